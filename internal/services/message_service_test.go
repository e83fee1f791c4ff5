package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"guestbook_backend/internal/dto"
	"guestbook_backend/internal/models"
	"guestbook_backend/internal/validator"
	"guestbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMessageRepo is an in-memory MessageRepository with the same ordering
// and filtering contract as the gorm implementation.
type fakeMessageRepo struct {
	messages   []models.Message
	nextID     int
	failCreate bool
}

func (r *fakeMessageRepo) Create(db *gorm.DB, message *models.Message) error {
	if r.failCreate {
		return errors.New("connection refused")
	}
	r.nextID++
	message.ID = r.nextID
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) Update(db *gorm.DB, id int, authorName, body string) error {
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].AuthorName = authorName
			r.messages[i].Body = body
		}
	}
	return nil
}

func (r *fakeMessageRepo) Delete(db *gorm.DB, id int) error {
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindWithPagination(db *gorm.DB, search string, page, pageSize int) ([]models.Message, int64, error) {
	var filtered []models.Message
	for _, m := range r.messages {
		if search == "" || strings.Contains(strings.ToLower(m.AuthorName), strings.ToLower(search)) {
			filtered = append(filtered, m)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID > filtered[j].ID })

	total := int64(len(filtered))
	offset := (page - 1) * pageSize
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func newMessageService(repo *fakeMessageRepo) MessageService {
	return NewMessageService(repo, validator.New(), &PaginationConfig{
		DefaultPageSize: 10,
		MaxPageSize:     100,
	})
}

func TestSubmitPersistsSanitizedMessage(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newMessageService(repo)

	err := svc.Submit(context.Background(), nil, &dto.SubmitMessageRequest{
		AuthorName:        "<Ana María>",
		Body:              `un mensaje "largo" de prueba`,
		VerificationToken: "tok",
	})
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, "Ana María", repo.messages[0].AuthorName)
	assert.Equal(t, "un mensaje largo de prueba", repo.messages[0].Body)
	assert.Equal(t, 1, repo.messages[0].ID)
}

func TestSubmitRejections(t *testing.T) {
	validBody := strings.Repeat("hola ", 4) // 20 chars

	tests := []struct {
		name    string
		req     dto.SubmitMessageRequest
		wantErr error
	}{
		{
			"name with digits",
			dto.SubmitMessageRequest{AuthorName: "Ana123", Body: validBody, VerificationToken: "tok"},
			apperrors.ErrInvalidName,
		},
		{
			"name too short",
			dto.SubmitMessageRequest{AuthorName: "An", Body: validBody, VerificationToken: "tok"},
			apperrors.ErrInvalidName,
		},
		{
			"name too long",
			dto.SubmitMessageRequest{AuthorName: strings.Repeat("a", 51), Body: validBody, VerificationToken: "tok"},
			apperrors.ErrInvalidName,
		},
		{
			"name empty after sanitization",
			dto.SubmitMessageRequest{AuthorName: "<<script>>", Body: validBody, VerificationToken: "tok"},
			apperrors.ErrInvalidName,
		},
		{
			"body too short",
			dto.SubmitMessageRequest{AuthorName: "Ana María", Body: strings.Repeat("x", 9), VerificationToken: "tok"},
			apperrors.ErrInvalidBody,
		},
		{
			"body too long",
			dto.SubmitMessageRequest{AuthorName: "Ana María", Body: strings.Repeat("x", 501), VerificationToken: "tok"},
			apperrors.ErrInvalidBody,
		},
		{
			"missing verification token",
			dto.SubmitMessageRequest{AuthorName: "Ana María", Body: validBody},
			apperrors.ErrMissingVerification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMessageRepo{}
			svc := newMessageService(repo)

			err := svc.Submit(context.Background(), nil, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.messages, "a rejected submission must not be persisted")
		})
	}
}

func TestSubmitBodyBoundariesInclusive(t *testing.T) {
	for _, n := range []int{10, 500} {
		repo := &fakeMessageRepo{}
		svc := newMessageService(repo)

		err := svc.Submit(context.Background(), nil, &dto.SubmitMessageRequest{
			AuthorName:        "Ana María",
			Body:              strings.Repeat("x", n),
			VerificationToken: "tok",
		})
		assert.NoError(t, err, "body of %d chars must pass", n)
	}
}

func TestSubmitRepositoryFailure(t *testing.T) {
	repo := &fakeMessageRepo{failCreate: true}
	svc := newMessageService(repo)

	err := svc.Submit(context.Background(), nil, &dto.SubmitMessageRequest{
		AuthorName:        "Ana María",
		Body:              strings.Repeat("x", 20),
		VerificationToken: "tok",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}

func TestUpdateSanitizesAndValidates(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newMessageService(repo)

	require.NoError(t, svc.Submit(context.Background(), nil, &dto.SubmitMessageRequest{
		AuthorName:        "Ana María",
		Body:              strings.Repeat("x", 20),
		VerificationToken: "tok",
	}))

	err := svc.Update(context.Background(), nil, 1, &dto.UpdateMessageRequest{
		AuthorName: "Pedro';--",
		Body:       "un texto actualizado",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pedro", repo.messages[0].AuthorName)
	assert.Equal(t, "un texto actualizado", repo.messages[0].Body)

	err = svc.Update(context.Background(), nil, 1, &dto.UpdateMessageRequest{
		AuthorName: "P3dro",
		Body:       "un texto actualizado",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidName)
}

func TestListPagination(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newMessageService(repo)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		require.NoError(t, svc.Submit(ctx, nil, &dto.SubmitMessageRequest{
			AuthorName:        "Autor Numero",
			Body:              fmt.Sprintf("mensaje de prueba %d", i),
			VerificationToken: "tok",
		}))
	}

	page1, err := svc.List(ctx, nil, 1, 10, "")
	require.NoError(t, err)
	assert.Len(t, page1.Data, 10)
	assert.Equal(t, int64(23), page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 23, page1.Data[0].ID, "newest first")

	page3, err := svc.List(ctx, nil, 3, 10, "")
	require.NoError(t, err)
	assert.Len(t, page3.Data, 3)
	assert.Equal(t, 3, page3.TotalPages)

	// Past the last page: empty rows, metadata intact
	page4, err := svc.List(ctx, nil, 4, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page4.Data)
	assert.Equal(t, int64(23), page4.Total)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestListClampsPageAndPageSize(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newMessageService(repo)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, svc.Submit(ctx, nil, &dto.SubmitMessageRequest{
			AuthorName:        "Autor Numero",
			Body:              strings.Repeat("x", 15),
			VerificationToken: "tok",
		}))
	}

	// Zero and negative page sizes fall back to the configured default
	resp, err := svc.List(ctx, nil, 1, 0, "")
	require.NoError(t, err)
	assert.Len(t, resp.Data, 7)
	assert.Equal(t, 1, resp.TotalPages)

	resp, err = svc.List(ctx, nil, -3, -1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Data, 7)

	// Empty store: zero pages, no fault
	empty := &fakeMessageRepo{}
	resp, err = newMessageService(empty).List(ctx, nil, 1, 0, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.TotalPages)
}

func TestListSearchFiltersCaseInsensitive(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newMessageService(repo)
	ctx := context.Background()

	for _, name := range []string{"Ana López", "MARIANA", "Pedro", "Susana"} {
		require.NoError(t, svc.Submit(ctx, nil, &dto.SubmitMessageRequest{
			AuthorName:        name,
			Body:              strings.Repeat("x", 15),
			VerificationToken: "tok",
		}))
	}

	resp, err := svc.List(ctx, nil, 1, 10, "ana")
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, int64(3), resp.Total, "total must reflect the filtered set")
	assert.Equal(t, 1, resp.TotalPages)
	for _, m := range resp.Data {
		assert.Contains(t, strings.ToLower(m.AuthorName), "ana")
	}
}

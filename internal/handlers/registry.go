package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	MessageHandler *MessageHandler
	GalleryHandler *GalleryHandler
}

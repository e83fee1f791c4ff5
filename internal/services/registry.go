package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	MessageService MessageService
	GalleryService GalleryService
}

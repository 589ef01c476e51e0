package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Calendar endpoints.
	ListEventsHandler        gin.HandlerFunc
	CheckAvailabilityHandler gin.HandlerFunc

	// Storage endpoints.
	UploadPhotosHandler gin.HandlerFunc

	// Checkout endpoints.
	CreateCheckoutSessionHandler gin.HandlerFunc
}

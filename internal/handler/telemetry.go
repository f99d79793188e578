package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wearable-server/internal/hub"
	"wearable-server/internal/middleware"
	"wearable-server/internal/model"
	"wearable-server/internal/storage"
)

type TelemetryHandler struct {
	DB     storage.Database
	Hub    *hub.Hub
	Logger *zap.Logger
}

type telemetryBody struct {
	HeartRate   *float64        `json:"heartRate"`
	Temperature *float64        `json:"temperature"`
	Location    *model.Location `json:"location"`
}

// Create persists the sample under the caller's identity and publishes it to
// every live observer. The endpoint does not know or care who is watching.
func (h *TelemetryHandler) Create(c *gin.Context) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}

	var body telemetryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid data!"})
		return
	}
	var missing []string
	if body.HeartRate == nil {
		missing = append(missing, "heartRate")
	}
	if body.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if body.Location == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid data!", "missing": missing})
		return
	}

	sample := model.TelemetrySample{
		HeartRate:   *body.HeartRate,
		Temperature: *body.Temperature,
		Location:    *body.Location,
		Timestamp:   model.NowTimestamp(),
		UserID:      claims.UserID,
	}

	_, err := h.DB.Collection(storage.SensorData).InsertOne(c.Request.Context(), storage.Document{
		"heartRate":   sample.HeartRate,
		"temperature": sample.Temperature,
		"location":    storage.Document{"lat": sample.Location.Lat, "lng": sample.Location.Lng},
		"timestamp":   sample.Timestamp,
		"userId":      sample.UserID,
	})
	if err != nil {
		h.Logger.Error("telemetry: insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to save data"})
		return
	}

	h.Hub.Publish(sample)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Data updated and saved successfully!"})
}

// Latest returns the current latest-sample slot.
func (h *TelemetryHandler) Latest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": h.Hub.Latest()})
}

// Last10 is the public global feed: the ten most recent samples from any
// identity, oldest first.
func (h *TelemetryHandler) Last10(c *gin.Context) {
	h.recent(c, storage.Document{})
}

// UserData returns the caller's ten most recent samples, oldest first.
func (h *TelemetryHandler) UserData(c *gin.Context) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}
	h.recent(c, storage.Document{"userId": claims.UserID})
}

func (h *TelemetryHandler) recent(c *gin.Context, filter storage.Document) {
	docs, err := h.DB.Collection(storage.SensorData).Find(c.Request.Context(), filter, storage.FindOptions{
		SortField:  "timestamp",
		Descending: true,
		Limit:      10,
	})
	if err != nil {
		h.Logger.Error("telemetry: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch data"})
		return
	}

	// Query is newest-first for the limit; clients want oldest-first.
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
	if docs == nil {
		docs = []storage.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": docs})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wearable-server/internal/middleware"
	"wearable-server/internal/model"
	"wearable-server/internal/storage"
)

// ReportsHandler serves the three activity-report families. They share one
// shape (validate, stamp owner, persist / filter-by-owner read and delete),
// so each family is an ownedResource instance over the same three methods.
type ReportsHandler struct {
	DB     storage.Database
	Logger *zap.Logger
}

type ownedResource struct {
	collection string
	label      string
	required   []string
	optional   []string
}

var (
	runReports = ownedResource{
		collection: storage.RunReports,
		label:      "Run report",
		required:   []string{"time", "distance", "path", "startTime", "endTime"},
		optional:   []string{"caloriesBurned", "pace"},
	}
	walkReports = ownedResource{
		collection: storage.WalkReports,
		label:      "Walk report",
		required:   []string{"time", "distance", "path", "startTime", "endTime"},
		optional:   []string{"caloriesBurned", "pace"},
	}
	workouts = ownedResource{
		collection: storage.Workouts,
		label:      "Workout",
		required:   []string{"time", "exercises", "startTime", "endTime"},
	}
)

func (h *ReportsHandler) CreateRun(c *gin.Context)     { h.create(c, runReports) }
func (h *ReportsHandler) ListRuns(c *gin.Context)      { h.list(c, runReports) }
func (h *ReportsHandler) DeleteRun(c *gin.Context)     { h.delete(c, runReports) }
func (h *ReportsHandler) CreateWalk(c *gin.Context)    { h.create(c, walkReports) }
func (h *ReportsHandler) ListWalks(c *gin.Context)     { h.list(c, walkReports) }
func (h *ReportsHandler) DeleteWalk(c *gin.Context)    { h.delete(c, walkReports) }
func (h *ReportsHandler) CreateWorkout(c *gin.Context) { h.create(c, workouts) }
func (h *ReportsHandler) ListWorkouts(c *gin.Context)  { h.list(c, workouts) }
func (h *ReportsHandler) DeleteWorkout(c *gin.Context) { h.delete(c, workouts) }

func (h *ReportsHandler) create(c *gin.Context, res ownedResource) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	var missing []string
	for _, field := range res.required {
		if empty(body[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":   "error",
			"message":  "Missing " + res.label + " data",
			"required": res.required,
			"missing":  missing,
		})
		return
	}

	doc := storage.Document{
		"userId":    claims.UserID,
		"createdAt": model.NowTimestamp(),
	}
	for _, field := range res.required {
		doc[field] = body[field]
	}
	for _, field := range res.optional {
		if value, present := body[field]; present {
			doc[field] = value
		}
	}

	id, err := h.DB.Collection(res.collection).InsertOne(c.Request.Context(), doc)
	if err != nil {
		h.Logger.Error("report: insert failed", zap.String("collection", res.collection), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to save " + res.label})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": res.label + " saved successfully!", "id": id})
}

func (h *ReportsHandler) list(c *gin.Context, res ownedResource) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}

	docs, err := h.DB.Collection(res.collection).Find(c.Request.Context(),
		storage.Document{"userId": claims.UserID},
		storage.FindOptions{SortField: "createdAt", Descending: true})
	if err != nil {
		h.Logger.Error("report: fetch failed", zap.String("collection", res.collection), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch " + res.label + "s"})
		return
	}
	if docs == nil {
		docs = []storage.Document{}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": docs})
}

// delete matches on both id and owner. A miss on either is the same 404, so
// the response never reveals whether another identity owns the id.
func (h *ReportsHandler) delete(c *gin.Context, res ownedResource) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
		return
	}

	deleted, err := h.DB.Collection(res.collection).DeleteOne(c.Request.Context(), storage.Document{
		"_id":    c.Param("id"),
		"userId": claims.UserID,
	})
	if err != nil {
		h.Logger.Error("report: delete failed", zap.String("collection", res.collection), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete " + res.label})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": res.label + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": res.label + " deleted"})
}

// empty reports whether a required field is absent or has no content.
// Zero is a legitimate numeric value and passes.
func empty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// Package handlers implements the handlers for the different routes of the server to handle the incoming HTTP requests.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/activity-atlas/server/internal/managers"
	"github.com/activity-atlas/server/internal/metrics"
	"github.com/activity-atlas/server/internal/schemas"
	"github.com/activity-atlas/server/internal/utils"
)

// ActivityHdl defines the interface for handling activity-related HTTP requests.
type ActivityHdl interface {
	CreateActivity(ctx *gin.Context)
	UpdateActivity(ctx *gin.Context)
	DeleteActivity(ctx *gin.Context)
	GetActivityById(ctx *gin.Context)
	GetActivitiesByUserId(ctx *gin.Context)
}

// ActivityHandler coordinates the User <-> Activity relationship. Creating and
// deleting an activity each touch two records (the activity row and the owner's
// activity collection) and run as one transaction: both writes succeed or
// neither is visible.
type ActivityHandler struct {
	DatabaseManager  managers.DatabaseMgr
	StoreManager     managers.StoreMgr
	GeocodingManager managers.GeocodingMgr
}

var errNotOwner = errors.New("user is not the owner of the activity")
var errMissingImage = errors.New("missing image file in multipart form")

// NewActivityHandler returns a new ActivityHandler with the provided managers.
func NewActivityHandler(databaseManager *managers.DatabaseMgr, storeManager *managers.StoreMgr,
	geocodingManager *managers.GeocodingMgr) ActivityHdl {
	return &ActivityHandler{
		DatabaseManager:  *databaseManager,
		StoreManager:     *storeManager,
		GeocodingManager: *geocodingManager,
	}
}

// CreateActivity handles the creation of a new activity. It validates the multipart
// payload, resolves the address, stores the image, and then inserts the activity and
// appends its id to the owner's collection inside a single transaction. Every failure
// after the image was stored releases the stored file again.
func (handler *ActivityHandler) CreateActivity(ctx *gin.Context) {
	createRequest := &schemas.CreateActivityRequest{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Address:     ctx.PostForm("address"),
	}

	validator := utils.GetValidator()
	if err := validator.SanitizeData(createRequest); err != nil {
		utils.WriteAndLogError(ctx, schemas.BadRequest, http.StatusUnprocessableEntity, err)
		return
	}
	if err := validator.Validate.Struct(createRequest); err != nil {
		utils.WriteAndLogError(ctx, schemas.BadRequest, http.StatusUnprocessableEntity, err)
		return
	}

	imageFile, err := ctx.FormFile(utils.ImageFormKey)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.BadRequest, http.StatusUnprocessableEntity, errMissingImage)
		return
	}

	// Resolve the address before touching storage or the database
	location, err := handler.GeocodingManager.GeocodeAddress(ctx, createRequest.Address)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.UpstreamError, http.StatusBadGateway, err)
		return
	}

	imageURL, err := handler.StoreManager.Save(imageFile)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	// The trusted context is the only identity source for the owner
	claims := ctx.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	creatorId, err := uuid.Parse(userId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.Unauthenticated, http.StatusUnauthorized, err)
		handler.releaseImage(ctx, imageURL)
		return
	}

	// Begin a new transaction
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		handler.releaseImage(ctx, imageURL)
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	// Make sure the owner exists before linking anything to it
	queryString := "SELECT name FROM atlas_schema.users WHERE user_id = $1"
	row := tx.QueryRow(ctx, queryString, userId)

	var ownerName string
	if err := row.Scan(&ownerName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.UserNotFound, http.StatusNotFound, err)
		} else {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		}
		handler.releaseImage(ctx, imageURL)
		return
	}

	activityId := uuid.New()
	createdAt := time.Now()

	activity := &schemas.Activity{
		ID:          &activityId,
		Title:       createRequest.Title,
		Description: createRequest.Description,
		Address:     createRequest.Address,
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		ImageURL:    imageURL,
		CreatorID:   &creatorId,
		CreatedAt:   &createdAt,
	}

	// Linked write pair: the activity row and the owner's collection
	queryString = "INSERT INTO atlas_schema.activities (activity_id, title, description, address, latitude, longitude, image_url, creator_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)"
	if _, err := tx.Exec(ctx, queryString, activity.ID, activity.Title, activity.Description,
		activity.Address, activity.Latitude, activity.Longitude, activity.ImageURL, activity.CreatorID, activity.CreatedAt); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		handler.releaseImage(ctx, imageURL)
		return
	}

	queryString = "UPDATE atlas_schema.users SET activities = array_append(activities, $1) WHERE user_id = $2"
	if _, err := tx.Exec(ctx, queryString, activityId, userId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		handler.releaseImage(ctx, imageURL)
		return
	}

	// Commit the transaction
	if err := utils.CommitTransaction(ctx, tx); err != nil {
		handler.releaseImage(ctx, imageURL)
		return
	}

	metrics.ActivitiesCreatedTotal.Inc()

	activityDto := &schemas.ActivityDTO{
		ActivityId:  activity.ID.String(),
		Title:       activity.Title,
		Description: activity.Description,
		Address:     activity.Address,
		Location:    location,
		ImageURL:    activity.ImageURL,
		Creator:     activity.CreatorID.String(),
	}

	utils.WriteAndLogResponse(ctx, activityDto, http.StatusCreated)
}

// UpdateActivity changes title and description of an activity. The ownership check
// against the stored creator precedes any mutation; the relationship itself never
// changes, so no cross-record step is needed.
func (handler *ActivityHandler) UpdateActivity(ctx *gin.Context) {
	updateRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateActivityRequest)
	activityId := ctx.Param(utils.ActivityIdParamKey)

	claims := ctx.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	pool := handler.DatabaseManager.GetPool()

	queryString := "SELECT creator_id, address, latitude, longitude, image_url FROM atlas_schema.activities WHERE activity_id = $1"
	row := pool.QueryRow(ctx, queryString, activityId)

	var creatorId, address, imageURL string
	var latitude, longitude float64
	if err := row.Scan(&creatorId, &address, &latitude, &longitude, &imageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.ActivityNotFound, http.StatusNotFound, err)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if creatorId != userId {
		utils.WriteAndLogError(ctx, schemas.Forbidden, http.StatusForbidden, errNotOwner)
		return
	}

	queryString = "UPDATE atlas_schema.activities SET title = $1, description = $2 WHERE activity_id = $3"
	if _, err := pool.Exec(ctx, queryString, updateRequest.Title, updateRequest.Description, activityId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	activityDto := &schemas.ActivityDTO{
		ActivityId:  activityId,
		Title:       updateRequest.Title,
		Description: updateRequest.Description,
		Address:     address,
		Location:    schemas.LocationDTO{Latitude: latitude, Longitude: longitude},
		ImageURL:    imageURL,
		Creator:     creatorId,
	}

	utils.WriteAndLogResponse(ctx, activityDto, http.StatusOK)
}

// DeleteActivity removes an activity and its back-reference from the owner's
// collection in one transaction. The row lock taken by the ownership read makes
// concurrent deletes of the same activity resolve to one success and one 404.
// The image file is released only after the transaction committed.
func (handler *ActivityHandler) DeleteActivity(ctx *gin.Context) {
	activityId := ctx.Param(utils.ActivityIdParamKey)

	claims := ctx.Value(utils.ClaimsKey.String()).(jwt.MapClaims)
	userId := claims["sub"].(string)

	// Begin a new transaction
	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	// Ownership is checked against the stored creator, never against caller data
	queryString := "SELECT creator_id, image_url FROM atlas_schema.activities WHERE activity_id = $1 FOR UPDATE"
	row := tx.QueryRow(ctx, queryString, activityId)

	var creatorId, imageURL string
	if err := row.Scan(&creatorId, &imageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.ActivityNotFound, http.StatusNotFound, err)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if creatorId != userId {
		utils.WriteAndLogError(ctx, schemas.Forbidden, http.StatusForbidden, errNotOwner)
		return
	}

	// Linked delete pair: the activity row and the owner's collection
	queryString = "DELETE FROM atlas_schema.activities WHERE activity_id = $1"
	if _, err := tx.Exec(ctx, queryString, activityId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE atlas_schema.users SET activities = array_remove(activities, $1) WHERE user_id = $2"
	if _, err := tx.Exec(ctx, queryString, activityId, creatorId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	// Commit the transaction
	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.ActivitiesDeletedTotal.Inc()

	// Best-effort cleanup after the commit; a failure here is logged, never surfaced
	go func(reference string) {
		if err := handler.StoreManager.Remove(reference); err != nil {
			log.WithField("image", reference).Warn("Error releasing stored image: ", err)
			metrics.ImageCleanupFailuresTotal.Inc()
		}
	}(imageURL)

	utils.WriteAndLogResponse(ctx, &schemas.DeletionDTO{Message: "Deleted activity."}, http.StatusOK)
}

// GetActivityById returns a single activity.
func (handler *ActivityHandler) GetActivityById(ctx *gin.Context) {
	activityId := ctx.Param(utils.ActivityIdParamKey)

	queryString := "SELECT activity_id, title, description, address, latitude, longitude, image_url, creator_id FROM atlas_schema.activities WHERE activity_id = $1"
	row := handler.DatabaseManager.GetPool().QueryRow(ctx, queryString, activityId)

	activityDto, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.ActivityNotFound, http.StatusNotFound, err)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, activityDto, http.StatusOK)
}

// GetActivitiesByUserId returns all activities owned by the given user. A missing
// user yields 404; an existing user without activities yields an empty list.
func (handler *ActivityHandler) GetActivitiesByUserId(ctx *gin.Context) {
	userId := ctx.Param(utils.UserIdParamKey)
	pool := handler.DatabaseManager.GetPool()

	queryString := "SELECT name FROM atlas_schema.users WHERE user_id = $1"
	row := pool.QueryRow(ctx, queryString, userId)

	var ownerName string
	if err := row.Scan(&ownerName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "SELECT activity_id, title, description, address, latitude, longitude, image_url, creator_id FROM atlas_schema.activities WHERE creator_id = $1 ORDER BY created_at DESC"
	rows, err := pool.Query(ctx, queryString, userId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	activities := make([]*schemas.ActivityDTO, 0)
	for rows.Next() {
		activityDto, err := scanActivity(rows)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}

		activities = append(activities, activityDto)
	}

	if err := rows.Err(); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, activities, http.StatusOK)
}

// scanActivity scans one activity row into its DTO.
func scanActivity(row pgx.Row) (*schemas.ActivityDTO, error) {
	activityDto := &schemas.ActivityDTO{}
	err := row.Scan(&activityDto.ActivityId, &activityDto.Title, &activityDto.Description, &activityDto.Address,
		&activityDto.Location.Latitude, &activityDto.Location.Longitude, &activityDto.ImageURL, &activityDto.Creator)
	if err != nil {
		return nil, err
	}

	return activityDto, nil
}

// releaseImage removes a stored image that no activity references anymore.
func (handler *ActivityHandler) releaseImage(ctx *gin.Context, reference string) {
	if err := handler.StoreManager.Remove(reference); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Error releasing stored image", err)
		metrics.ImageCleanupFailuresTotal.Inc()
	}
}

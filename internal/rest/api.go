// Package rest binds the admin and public HTTP surface onto gin.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dojoworks/dojosite/cms/application"
	"github.com/dojoworks/dojosite/cms/domain"
)

// CollectionStore is the persistence surface a JSON array collection
// exposes to the handlers.
type CollectionStore[T domain.Entity] interface {
	List() ([]T, error)
	Upsert(item T) (T, error)
	Delete(id int64) error
}

// DocumentStore is the persistence surface a single JSON document
// exposes to the handlers.
type DocumentStore[T any] interface {
	Load() (T, error)
	Save(doc T) error
}

// API owns the services the handlers dispatch to.
type API struct {
	images       *application.ImageService
	programs     CollectionStore[*domain.Program]
	instructors  CollectionStore[*domain.Instructor]
	testimonials CollectionStore[*domain.Testimonial]
	settings     DocumentStore[domain.Settings]
	cmsSettings  DocumentStore[domain.CMSSettings]
	maxUpload    int64
}

func NewAPI(
	images *application.ImageService,
	programs CollectionStore[*domain.Program],
	instructors CollectionStore[*domain.Instructor],
	testimonials CollectionStore[*domain.Testimonial],
	settings DocumentStore[domain.Settings],
	cmsSettings DocumentStore[domain.CMSSettings],
	maxUpload int64,
) *API {
	return &API{
		images:       images,
		programs:     programs,
		instructors:  instructors,
		testimonials: testimonials,
		settings:     settings,
		cmsSettings:  cmsSettings,
		maxUpload:    maxUpload,
	}
}

// Register wires every route onto the router.
func (a *API) Register(router *gin.Engine) {
	admin := router.Group("/api/admin")
	{
		admin.GET("/images", a.listImages)
		admin.POST("/images", a.createImage)
		admin.DELETE("/images", a.deleteImage)
		admin.DELETE("/images/:id", a.deleteImage)

		registerCollection(admin, "programs", a.programs)
		registerCollection(admin, "instructors", a.instructors)
		registerCollection(admin, "testimonials", a.testimonials)

		registerDocument(admin, "settings", a.settings)
	}

	registerDocument(router.Group("/api"), "cms", a.cmsSettings)

	router.GET("/healthz", a.healthz)
}

// registerCollection binds list/upsert/delete routes for one JSON array
// collection under the given group.
func registerCollection[T any, PT interface {
	*T
	domain.Entity
}](g *gin.RouterGroup, name string, store CollectionStore[PT]) {
	g.GET("/"+name, func(c *gin.Context) {
		items, err := store.List()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	g.POST("/"+name, func(c *gin.Context) {
		item := PT(new(T))
		if err := c.ShouldBindJSON(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		saved, err := store.Upsert(item)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	})

	g.DELETE("/"+name+"/:id", func(c *gin.Context) {
		id, ok := parseID(c, c.Param("id"))
		if !ok {
			return
		}
		if err := store.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

// registerDocument binds load/save routes for a single JSON document.
func registerDocument[T any](g *gin.RouterGroup, name string, store DocumentStore[T]) {
	g.GET("/"+name, func(c *gin.Context) {
		doc, err := store.Load()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	g.POST("/"+name, func(c *gin.Context) {
		var doc T
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := store.Save(doc); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

// respondError maps domain errors onto HTTP statuses. Unexpected errors
// are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrIncompleteCrop),
		errors.Is(err, domain.ErrUnsupportedSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

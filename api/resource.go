package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/studiodesk/store"
)

// resource binds one store collection to CRUD routes. P is the patch type.
type resource[T any, P any] struct {
	entity store.EntityType
	list   func() []T
	search func(term string) []T // nil disables ?q=
	get    func(id string) (T, bool)
	add    func(T) string
	update func(id string, p P) bool
	remove func(id string) bool
}

func registerResource[T any, P any](g *gin.RouterGroup, r resource[T, P]) {
	g.GET("", r.handleList)
	g.POST("", r.handleCreate)
	g.GET("/:id", r.handleGet)
	g.PATCH("/:id", r.handleUpdate)
	g.DELETE("/:id", r.handleDelete)
}

func (r resource[T, P]) handleList(c *gin.Context) {
	if term, ok := c.GetQuery("q"); ok && r.search != nil {
		c.JSON(http.StatusOK, r.search(term))
		return
	}
	c.JSON(http.StatusOK, r.list())
}

func (r resource[T, P]) handleCreate(c *gin.Context) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+string(r.entity)+": "+err.Error())
		return
	}
	id := r.add(v)
	c.Header("Location", c.Request.URL.Path+"/"+id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (r resource[T, P]) handleGet(c *gin.Context) {
	v, ok := r.get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, string(r.entity)+" not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (r resource[T, P]) handleUpdate(c *gin.Context) {
	var p P
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+string(r.entity)+" patch: "+err.Error())
		return
	}
	r.update(c.Param("id"), p)
	c.Status(http.StatusNoContent)
}

func (r resource[T, P]) handleDelete(c *gin.Context) {
	r.remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func registerSetting[T any, P any](g *gin.RouterGroup, path string, get func() T, update func(P)) {
	g.GET(path, func(c *gin.Context) {
		c.JSON(http.StatusOK, get())
	})
	g.PATCH(path, func(c *gin.Context) {
		var p P
		if err := c.ShouldBindJSON(&p); err != nil {
			respondError(c, http.StatusBadRequest, "invalid settings patch: "+err.Error())
			return
		}
		update(p)
		c.JSON(http.StatusOK, get())
	})
}

func (s *Server) clientDependents(c *gin.Context) {
	deps := s.store.Dependents(c.Param("id"))
	if deps == nil {
		deps = []store.ChildRef{}
	}
	c.JSON(http.StatusOK, deps)
}

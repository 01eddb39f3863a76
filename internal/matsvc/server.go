// Package matsvc exposes a material registry over HTTP: materials are
// uploaded as description documents, stored in memory and queried per layer,
// including the resolved factor texture transform.
package matsvc

import (
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/patina/internal/matdesc"
)

type Server struct {
	store *Store
	clock func() time.Time
}

func NewServer(store *Store) *Server {
	if store == nil {
		store = NewStore()
	}
	return &Server{
		store: store,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/materials", s.handleCreate)
	e.GET("/v1/materials", s.handleList)
	e.GET("/v1/materials/:id", s.handleGet)
	e.DELETE("/v1/materials/:id", s.handleDelete)
	e.GET("/v1/materials/:id/layers/:layer", s.handleGetLayer)
	e.PUT("/v1/materials/:id/attributes", s.handleUpdateAttribute)
}

type createRequest struct {
	Name     string            `json:"name"`
	Material *matdesc.Document `json:"material"`
}

type materialSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	CreatedAt      int64  `json:"created_at"`
	Types          string `json:"types"`
	LayerCount     int    `json:"layer_count"`
	AttributeCount int    `json:"attribute_count"`
}

type materialResponse struct {
	materialSummary
	Material *matdesc.Document `json:"material"`
}

type layerResponse struct {
	Index         int                 `json:"index"`
	Name          string              `json:"name,omitempty"`
	Factor        float64             `json:"factor"`
	FactorTexture *factorTextureInfo  `json:"factor_texture,omitempty"`
	Attributes    []matdesc.Attribute `json:"attributes"`
}

// factorTextureInfo reports the layer's factor texture with its transform
// already resolved through the layer and base material fallbacks.
type factorTextureInfo struct {
	Texture     uint32    `json:"texture"`
	Swizzle     string    `json:"swizzle"`
	Matrix      []float64 `json:"matrix"`
	Coordinates uint32    `json:"coordinates"`
	Layer       uint32    `json:"layer"`
}

type updateAttributeRequest struct {
	Layer int    `json:"layer"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (s *Server) handleCreate(c *echo.Context) error {
	req, err := decodeJSON[createRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Material == nil {
		return writeBadRequest(c, "material document is required")
	}
	m, err := req.Material.Material()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	rec := s.store.Create(req.Name, m, s.clock())
	return c.JSON(http.StatusOK, summarize(rec))
}

func (s *Server) handleList(c *echo.Context) error {
	records := s.store.List()
	out := make([]materialSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, summarize(rec))
	}
	return c.JSON(http.StatusOK, map[string]any{"materials": out})
}

func (s *Server) handleGet(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "material not found")
	}
	doc, err := matdesc.FromMaterial(rec.Material)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "not_serializable", err.Error())
	}
	return c.JSON(http.StatusOK, materialResponse{
		materialSummary: summarize(rec),
		Material:        doc,
	})
}

func (s *Server) handleDelete(c *echo.Context) error {
	if !s.store.Delete(c.Param("id")) {
		return writeNotFound(c, "material not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleGetLayer(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "material not found")
	}
	layer, ok := parseIndex(c.Param("layer"))
	m := rec.Material
	if !ok || layer >= m.LayerCount() {
		return writeNotFound(c, "layer not found")
	}
	doc, err := matdesc.FromMaterial(m)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "not_serializable", err.Error())
	}

	resp := layerResponse{
		Index:      layer,
		Name:       m.LayerName(layer),
		Factor:     float64(m.LayerFactor(layer)),
		Attributes: doc.Layers[layer].Attributes,
	}
	if m.HasLayerFactorTexture(layer) {
		matrix := m.LayerFactorTextureMatrix(layer)
		info := &factorTextureInfo{
			Texture:     m.LayerFactorTexture(layer),
			Swizzle:     m.LayerFactorTextureSwizzle(layer).String(),
			Matrix:      make([]float64, len(matrix)),
			Coordinates: m.LayerFactorTextureCoordinates(layer),
			Layer:       m.LayerFactorTextureLayer(layer),
		}
		for i, v := range matrix {
			info.Matrix[i] = float64(v)
		}
		resp.FactorTexture = info
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUpdateAttribute(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "material not found")
	}
	req, err := decodeJSON[updateAttributeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	m := rec.Material
	if req.Layer < 0 || req.Layer >= m.LayerCount() {
		return writeNotFound(c, "layer not found")
	}
	id, ok := m.FindAttributeID(req.Layer, req.Name)
	if !ok {
		return writeNotFound(c, "attribute not found")
	}
	value, err := matdesc.DecodeValue(m.AttributeTypeAt(req.Layer, id), req.Value)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := m.MutableAttributeAt(req.Layer, id).SetValue(value); err != nil {
		return writeBadRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"updated": true})
}

func summarize(rec *Record) materialSummary {
	return materialSummary{
		ID:             rec.ID,
		Name:           rec.Name,
		CreatedAt:      rec.Created.Unix(),
		Types:          rec.Material.Types().String(),
		LayerCount:     rec.Material.LayerCount(),
		AttributeCount: rec.Material.TotalAttributeCount(),
	}
}

func parseIndex(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1<<20 {
			return 0, false
		}
	}
	return n, true
}

func decodeJSON[T any](r io.Reader) (*T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": map[string]string{
			"type":    errType,
			"message": msg,
		},
	})
}

package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/councilstream/moodcanvas/internal/domain"
	apperrors "github.com/councilstream/moodcanvas/internal/errors"
)

type effectRequest struct {
	Effect string `json:"effect"`
	Color  string `json:"color,omitempty"`
}

func (s *Server) handleApplyEffect(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	var req effectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	var layer domain.Layer
	switch req.Effect {
	case "vignette":
		layer = session.ApplyVignette()
	case "glow":
		layer = session.ApplyGlow(req.Color)
	case "aberration":
		layer = session.ApplyAberration()
	default:
		return apperrors.ValidationError("effect must be one of vignette, glow, aberration").
			WithContext("effect", req.Effect)
	}

	return c.JSON(http.StatusCreated, layer)
}

type layoutRequest struct {
	Layout string `json:"layout"`

	// split fields
	Left          any     `json:"left,omitempty"`
	Right         any     `json:"right,omitempty"`
	SplitPosition float64 `json:"split_position,omitempty"`
	DividerWidth  int     `json:"divider_width,omitempty"`
	DividerColor  string  `json:"divider_color,omitempty"`

	// picture-in-picture fields
	Main        any    `json:"main,omitempty"`
	Pip         any    `json:"pip,omitempty"`
	X           int    `json:"x,omitempty"`
	Y           int    `json:"y,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	BorderWidth int    `json:"border_width,omitempty"`
	BorderColor string `json:"border_color,omitempty"`
}

// handleApplyLayout validates layout geometry at the boundary; the compositor
// itself trusts its callers.
func (s *Server) handleApplyLayout(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	var req layoutRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	var layers []domain.Layer
	switch req.Layout {
	case "split":
		if req.SplitPosition < 0 || req.SplitPosition > 1 {
			return apperrors.ValidationError("split_position must be in [0,1]").
				WithContext("split_position", req.SplitPosition)
		}
		if req.DividerWidth < 0 {
			return apperrors.ValidationError("divider_width must not be negative").
				WithContext("divider_width", req.DividerWidth)
		}
		layers = session.SplitScreen(req.Left, req.Right, req.SplitPosition, req.DividerWidth, req.DividerColor)
	case "pip":
		if req.Width <= 0 || req.Height <= 0 {
			return apperrors.ValidationError("width and height must be positive")
		}
		if req.BorderWidth < 0 {
			return apperrors.ValidationError("border_width must not be negative").
				WithContext("border_width", req.BorderWidth)
		}
		layers = session.PictureInPicture(req.Main, req.Pip, req.X, req.Y, req.Width, req.Height, req.BorderWidth, req.BorderColor)
	default:
		return apperrors.ValidationError("layout must be one of split, pip").
			WithContext("layout", req.Layout)
	}

	return c.JSON(http.StatusCreated, map[string]any{"layers": layers})
}

func (s *Server) handleClearLayers(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	var types []domain.LayerType
	for _, raw := range c.QueryParams()["type"] {
		parsed, err := domain.ParseLayerType(raw)
		if err != nil {
			return apperrors.ValidationError(err.Error()).WithContext("type", raw)
		}
		types = append(types, parsed)
	}

	session.ClearLayers(types...)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveLayer(c echo.Context) error {
	session, err := s.sessionFromPath(c)
	if err != nil {
		return err
	}

	layerID, err := uuid.Parse(c.Param("layerID"))
	if err != nil {
		return apperrors.ValidationError("invalid layer ID").WithContext("layer_id", c.Param("layerID"))
	}

	if !session.RemoveLayer(layerID) {
		return apperrors.NotFoundError("layer not found").WithContext("layer_id", layerID.String())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

package models

// CreateDesignRequest represents the request body for creating a design.
// Omitted parameters fall back to DefaultParameters.
type CreateDesignRequest struct {
	Name       string            `json:"name" binding:"max=256"`
	Parameters *DesignParameters `json:"parameters,omitempty"`
	Rate       *float64          `json:"rate,omitempty" binding:"omitempty,gt=0"`
}

// UpdateDesignRequest represents the request body for updating a design.
type UpdateDesignRequest struct {
	Name       *string          `json:"name,omitempty" binding:"omitempty,max=256"`
	Parameters *ParametersPatch `json:"parameters,omitempty"`
	Rate       *float64         `json:"rate,omitempty" binding:"omitempty,gt=0"`
}

// SceneRequest replaces the custom canvas content of a design.
type SceneRequest struct {
	Scene
}

// PanelOffsetRequest sets the slide offset of one parametric panel.
type PanelOffsetRequest struct {
	Offset float64 `json:"offset"`
}

// DesignResponse wraps a single design in the API response.
type DesignResponse struct {
	Data Design `json:"data"`
}

// DesignsResponse wraps multiple designs in the API response.
type DesignsResponse struct {
	Data []Design `json:"data"`
}

// ComputeResponse is the result of a stateless engine run.
type ComputeResponse struct {
	Geometry *Geometry      `json:"geometry"`
	Warnings []string       `json:"warnings"`
	Outputs  *ProjectOutput `json:"outputs"`
}

// EditorEventType names an input event replayed against an editor session.
type EditorEventType string

const (
	EventPointerDown  EditorEventType = "pointer-down"
	EventPointerMove  EditorEventType = "pointer-move"
	EventPointerUp    EditorEventType = "pointer-up"
	EventPointerLeave EditorEventType = "pointer-leave"
	EventWheel        EditorEventType = "wheel"
	EventKey          EditorEventType = "key"
	EventTool         EditorEventType = "tool"
	EventCommand      EditorEventType = "command"
	EventText         EditorEventType = "text"
)

// EditorEvent is one pointer, keyboard or toolbar input in canvas
// coordinates.
type EditorEvent struct {
	Type    EditorEventType `json:"type" binding:"required"`
	X       float64         `json:"x,omitempty"`
	Y       float64         `json:"y,omitempty"`
	Button  int             `json:"button,omitempty"`
	Shift   bool            `json:"shift,omitempty"`
	Ctrl    bool            `json:"ctrl,omitempty"`
	Meta    bool            `json:"meta,omitempty"`
	DeltaY  float64         `json:"deltaY,omitempty"`
	Key     string          `json:"key,omitempty"`
	Tool    string          `json:"tool,omitempty"`
	Command string          `json:"command,omitempty"`
	Value   string          `json:"value,omitempty"`
}

// EditorEventsRequest is a batch of events applied in order.
type EditorEventsRequest struct {
	Events []EditorEvent `json:"events" binding:"required,dive"`
}

// OpenEditorRequest starts an editor session. A zero size keeps the
// default viewport.
type OpenEditorRequest struct {
	Width  float64 `json:"width" binding:"gte=0"`
	Height float64 `json:"height" binding:"gte=0"`
}

// EditorState is the observable state of an editor session.
type EditorState struct {
	SessionID   string         `json:"sessionId"`
	DesignID    string         `json:"designId"`
	Tool        string         `json:"tool"`
	Mode        string         `json:"mode"`
	Selected    *ElementRef    `json:"selected,omitempty"`
	EditingText *TextBox       `json:"editingText,omitempty"`
	CanUndo     bool           `json:"canUndo"`
	CanRedo     bool           `json:"canRedo"`
	View        CanvasView     `json:"view"`
	Scene       Scene          `json:"scene"`
	Outputs     *ProjectOutput `json:"outputs"`
}

// EditorStateResponse wraps an editor session state in the API response.
type EditorStateResponse struct {
	Data EditorState `json:"data"`
}

// QuotationRequest selects the designs to price. An empty list prices
// every stored design.
type QuotationRequest struct {
	DesignIDs []string `json:"designIds"`
}

// ErrorResponse represents an error response from the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/store"
)

// MockRepository implements database.Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, design *models.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*models.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]models.Design, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Design), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, design *models.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Close() {
	m.Called()
}

// MockCache implements cache.Cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, id string) (*models.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockCache) GetAll(ctx context.Context) ([]models.Design, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Design), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, design *models.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *MockCache) SetAll(ctx context.Context, designs []models.Design) error {
	args := m.Called(ctx, designs)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) GetSVG(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) SetSVG(ctx context.Context, key, svg string) error {
	args := m.Called(ctx, key, svg)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func setupTestHandler(opts Options) (*Handler, *MockRepository, *MockCache, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockRepository)
	mockCache := new(MockCache)
	logger, _ := zap.NewDevelopment()

	handler := NewHandler(mockRepo, mockCache, opts, logger)

	engine := gin.New()
	rg := engine.Group("/api/v1")
	handler.RegisterRoutes(rg)

	return handler, mockRepo, mockCache, engine
}

// computedDesign returns a stored-looking design with the patch applied and
// its results computed.
func computedDesign(t *testing.T, patch models.ParametersPatch) *models.Design {
	t.Helper()
	s := store.New(store.Options{Debounce: time.Hour}, nil)
	defer s.Close()
	s.Initialize()
	require.NoError(t, s.UpdateParameters(patch))
	require.NoError(t, s.Flush())
	d, err := s.Active()
	require.NoError(t, err)
	return &d
}

func ptr[T any](v T) *T { return &v }

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeDesign(t *testing.T, w *httptest.ResponseRecorder) models.Design {
	t.Helper()
	var response models.DesignResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data
}

func TestCreate_Success(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *models.Design) bool {
		return d.Name == "Kitchen" && d.Parameters.System == models.SystemCasement && d.Geometry != nil
	})).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	body := `{"name": "Kitchen", "parameters": {"system": "casement", "profile": "standard", "material": "aluminum",
		"color": "white", "glass": "standard", "hardware": "modern", "width": 1200, "height": 1500, "panels": 9}}`
	w := serve(engine, http.MethodPost, "/api/v1/designs", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	d := decodeDesign(t, w)
	assert.Equal(t, "Kitchen", d.Name)
	assert.Equal(t, 4, d.Parameters.Panels)
	require.NotNil(t, d.Geometry)
	assert.Len(t, d.Geometry.Panels, 4)
	assert.Len(t, d.PanelOpenStates, 4)
	assert.Equal(t, float64(models.DefaultRate), d.Rate)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCreate_Defaults(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{DefaultRate: 400})

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	w := serve(engine, http.MethodPost, "/api/v1/designs", `{}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	d := decodeDesign(t, w)
	assert.Equal(t, models.DefaultParameters(), d.Parameters)
	assert.Equal(t, 400.0, d.Rate)
	assert.True(t, strings.HasPrefix(d.ID, "design_"))
}

func TestCreate_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name": `},
		{name: "unknown system", body: `{"parameters": {"system": "sliding"}}`},
		{name: "non-positive rate", body: `{"rate": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockRepo, _, engine := setupTestHandler(Options{})

			w := serve(engine, http.MethodPost, "/api/v1/designs", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetAll_FromCache(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	cached := []models.Design{*computedDesign(t, models.ParametersPatch{})}
	mockCache.On("GetAll", mock.Anything).Return(cached, true, nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.DesignsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)

	mockRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGetAll_FromDatabase(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	stored := []models.Design{*computedDesign(t, models.ParametersPatch{}), *computedDesign(t, models.ParametersPatch{})}
	mockCache.On("GetAll", mock.Anything).Return(nil, false, nil)
	mockRepo.On("GetAll", mock.Anything).Return(stored, nil)
	mockCache.On("SetAll", mock.Anything, stored).Return(nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs", "")

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	mockCache.On("Get", mock.Anything, "design_missing").Return(nil, nil)
	mockRepo.On("GetByID", mock.Anything, "design_missing").Return(nil, nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs/design_missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_found", response.Error)
}

func TestGetByID_FromDatabase(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(nil, nil)
	mockRepo.On("GetByID", mock.Anything, d.ID).Return(d, nil)
	mockCache.On("Set", mock.Anything, d).Return(nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs/"+d.ID, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, d.ID, decodeDesign(t, w).ID)
	mockCache.AssertExpectations(t)
}

func TestUpdate_RecomputesAndSaves(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.Design) bool {
		return u.Name == "Balcony" && u.Rate == 420 && u.Geometry != nil && u.Geometry.Frame.Outer.Width == 2000
	})).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	w := serve(engine, http.MethodPatch, "/api/v1/designs/"+d.ID,
		`{"name": "Balcony", "rate": 420, "parameters": {"width": 2000}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeDesign(t, w)
	assert.Equal(t, 2000.0, updated.Parameters.Width)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_InvalidParameters(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)

	w := serve(engine, http.MethodPut, "/api/v1/designs/"+d.ID, `{"parameters": {"glass": "stained"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	mockRepo.On("Delete", mock.Anything, "design_a").Return(nil)
	mockRepo.On("Delete", mock.Anything, "design_b").Return(models.ErrNotFound)
	mockCache.On("Delete", mock.Anything, "design_a").Return(nil)

	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/designs/design_a", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodDelete, "/api/v1/designs/design_b", "").Code)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything, "design_b")
}

func TestCompute(t *testing.T) {
	_, _, _, engine := setupTestHandler(Options{})

	body := `{"system": "fixed", "profile": "slim", "material": "upvc", "color": "white",
		"glass": "standard", "hardware": "minimalist", "width": 1000, "height": 1000, "panels": 3}`
	w := serve(engine, http.MethodPost, "/api/v1/compute", body)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.ComputeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Geometry)
	assert.Len(t, response.Geometry.Panels, 1)
	require.NotNil(t, response.Outputs)

	w = serve(engine, http.MethodPost, "/api/v1/compute", `{"system": "fixed", "profile": "paper"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompute_RateLimited(t *testing.T) {
	_, _, _, engine := setupTestHandler(Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	body := `{"system": "2-track", "profile": "standard", "material": "aluminum", "color": "white",
		"glass": "standard", "hardware": "modern", "width": 2000, "height": 2000, "panels": 2}`
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/compute", body).Code)

	w := serve(engine, http.MethodPost, "/api/v1/compute", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "rate_limited", response.Error)
}

func TestRenderSVG(t *testing.T) {
	_, _, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)
	mockCache.On("GetSVG", mock.Anything, mock.Anything).Return("", false, nil).Once()
	mockCache.On("SetSVG", mock.Anything, mock.Anything, mock.MatchedBy(func(svg string) bool {
		return strings.Contains(svg, `viewBox="0 0 3200 2600"`)
	})).Return(nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs/"+d.ID+"/svg", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `class="panel"`)
	mockCache.AssertExpectations(t)

	mockCache.On("GetSVG", mock.Anything, mock.Anything).Return("<svg/>", true, nil).Once()
	w = serve(engine, http.MethodGet, "/api/v1/designs/"+d.ID+"/svg", "")
	assert.Equal(t, "<svg/>", w.Body.String())
	mockCache.AssertNumberOfCalls(t, "SetSVG", 1)
}

func TestRenderScene3D(t *testing.T) {
	_, _, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)

	w := serve(engine, http.MethodGet, "/api/v1/designs/"+d.ID+"/scene3d", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data struct {
			Root struct {
				Children []json.RawMessage `json:"children"`
			} `json:"root"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data.Root.Children, 7)
}

func TestTogglePanel(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	sliding := computedDesign(t, models.ParametersPatch{})
	casement := computedDesign(t, models.ParametersPatch{System: ptr(models.SystemCasement), Panels: ptr(2)})
	mockCache.On("Get", mock.Anything, sliding.ID).Return(sliding, nil)
	mockCache.On("Get", mock.Anything, casement.ID).Return(casement, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	w := serve(engine, http.MethodPost, "/api/v1/designs/"+sliding.ID+"/panels/0/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(engine, http.MethodPost, "/api/v1/designs/"+casement.ID+"/panels/x/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(engine, http.MethodPost, "/api/v1/designs/"+casement.ID+"/panels/1/toggle", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.OpenState{models.Closed, models.PartiallyOpen}, decodeDesign(t, w).PanelOpenStates)
}

func TestSetPanelOffset(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	w := serve(engine, http.MethodPut, "/api/v1/designs/"+d.ID+"/panels/2/offset", `{"offset": 500}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []float64{0, 0, 39}, decodeDesign(t, w).PanelOffsets)
}

func TestReplaceScene(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	parametric := computedDesign(t, models.ParametersPatch{})
	custom := computedDesign(t, models.ParametersPatch{System: ptr(models.SystemCustom)})
	mockCache.On("Get", mock.Anything, parametric.ID).Return(parametric, nil)
	mockCache.On("Get", mock.Anything, custom.ID).Return(custom, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	frame := scene.NewFrame(geom.Rect{Width: 1000, Height: 800})
	body, err := json.Marshal(models.SceneRequest{Scene: models.Scene{Frames: []models.Frame{frame}}})
	require.NoError(t, err)

	w := serve(engine, http.MethodPut, "/api/v1/designs/"+parametric.ID+"/scene", string(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(engine, http.MethodPut, "/api/v1/designs/"+custom.ID+"/scene", string(body))
	assert.Equal(t, http.StatusOK, w.Code)
	d := decodeDesign(t, w)
	require.Len(t, d.Frames, 1)
	require.NotNil(t, d.Outputs)
	assert.Nil(t, d.Geometry)

	custom.Frames = []models.Frame{frame}
	w = serve(engine, http.MethodPost, "/api/v1/designs/"+custom.ID+"/frames/"+frame.ID+"/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "fixed frames do not open")

	w = serve(engine, http.MethodPost, "/api/v1/designs/"+custom.ID+"/frames/frame_missing/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotation(t *testing.T) {
	_, mockRepo, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{Width: ptr(304.8), Height: ptr(304.8)})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)
	mockRepo.On("GetAll", mock.Anything).Return([]models.Design{}, nil)

	w := serve(engine, http.MethodPost, "/api/v1/quotation", `{"designIds": ["`+d.ID+`"]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var response QuotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data.Lines, 1)
	assert.InDelta(t, 1.0, response.Data.TotalArea, 1e-9)
	assert.InDelta(t, 360.0, response.Data.TotalAmount, 1e-6)

	w = serve(engine, http.MethodPost, "/api/v1/quotation", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "nothing to price")
}

func TestEditorSession(t *testing.T) {
	h, mockRepo, mockCache, engine := setupTestHandler(Options{})
	defer h.Close()

	d := computedDesign(t, models.ParametersPatch{System: ptr(models.SystemCustom)})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.Design) bool {
		return len(u.Frames) == 1 && u.Outputs != nil
	})).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything).Return(nil)

	w := serve(engine, http.MethodPost, "/api/v1/designs/"+d.ID+"/editor", `{"width": 800, "height": 600}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var opened models.EditorStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	session := opened.Data.SessionID
	assert.Equal(t, "select", opened.Data.Tool)

	events := `{"events": [
		{"type": "tool", "tool": "draw-frame"},
		{"type": "pointer-down", "x": 0, "y": 0},
		{"type": "pointer-move", "x": 400, "y": 320},
		{"type": "pointer-up"}
	]}`
	w = serve(engine, http.MethodPost, "/api/v1/editor/"+session+"/events", events)
	require.Equal(t, http.StatusOK, w.Code)
	var state models.EditorStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Len(t, state.Data.Scene.Frames, 1)
	assert.Len(t, state.Data.Scene.Dimensions, 2)
	assert.True(t, state.Data.CanUndo)
	assert.Equal(t, "select", state.Data.Tool)

	w = serve(engine, http.MethodGet, "/api/v1/editor/"+session+"/svg", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `width="800"`)

	w = serve(engine, http.MethodPost, "/api/v1/editor/"+session+"/events", `{"events": [{"type": "tool", "tool": "merge"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/editor/"+session, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/editor/"+session, "").Code)
	mockRepo.AssertExpectations(t)
}

func TestOpenEditor_RequiresCustomDesign(t *testing.T) {
	_, _, mockCache, engine := setupTestHandler(Options{})

	d := computedDesign(t, models.ParametersPatch{})
	mockCache.On("Get", mock.Anything, d.ID).Return(d, nil)

	w := serve(engine, http.MethodPost, "/api/v1/designs/"+d.ID+"/editor", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(engine, http.MethodPost, "/api/v1/editor/unknown/events", `{"events": [{"type": "pointer-up"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

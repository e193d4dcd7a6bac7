package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-cafe-service/internal/definition/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/model"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUseCase struct {
	keyword       string
	createdOption *dto.CreateOptionInput
	productInput  *dto.ProductOptionsInput
	deleteErr     error
}

func (s *stubUseCase) ListTypes(_ context.Context, keyword string) ([]model.ProductType, error) {
	s.keyword = keyword
	return []model.ProductType{{ID: 1, Name: "Đồ uống"}}, nil
}

func (s *stubUseCase) CreateType(_ context.Context, in *dto.TypeInput) (*model.ProductType, error) {
	return &model.ProductType{ID: 2, Name: in.Name}, nil
}

func (s *stubUseCase) UpdateType(_ context.Context, in *dto.TypeInput) (*model.ProductType, error) {
	return &model.ProductType{ID: in.ID, Name: in.Name}, nil
}

func (s *stubUseCase) DeleteType(context.Context, int64) error { return s.deleteErr }

func (s *stubUseCase) ListOptions(_ context.Context, keyword string) ([]model.OptionDefinition, error) {
	s.keyword = keyword
	return []model.OptionDefinition{{ID: 1, Title: "Size"}}, nil
}

func (s *stubUseCase) GetOption(_ context.Context, id int64) (*model.OptionDefinition, error) {
	return nil, apperr.NotFound("option", id)
}

func (s *stubUseCase) CreateOption(_ context.Context, in *dto.CreateOptionInput) (*model.OptionDefinition, error) {
	s.createdOption = in
	return &model.OptionDefinition{ID: 3, Title: in.Title}, nil
}

func (s *stubUseCase) UpdateOption(_ context.Context, in *dto.UpdateOptionInput) (*model.OptionDefinition, error) {
	return &model.OptionDefinition{ID: in.ID, Title: in.Title}, nil
}

func (s *stubUseCase) GetProductOptions(_ context.Context, productID int64) ([]model.ProductOption, error) {
	return []model.ProductOption{{ID: 1, ProductID: productID, Title: "Size"}}, nil
}

func (s *stubUseCase) SetProductOptions(_ context.Context, in *dto.ProductOptionsInput) ([]model.ProductOption, error) {
	s.productInput = in
	return []model.ProductOption{}, nil
}

func serve(uc *stubUseCase, method, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	NewDefinitionHandler(uc, httpx.NewResponder(nil, logger.NewNop()), logger.NewNop()).RegisterRoutes(r.Group("/api"))
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTypeRoutes(t *testing.T) {
	uc := &stubUseCase{}

	if w := serve(uc, http.MethodGet, "/api/definition/types?q=do", ""); w.Code != http.StatusOK || uc.keyword != "do" {
		t.Errorf("list: code=%d keyword=%q", w.Code, uc.keyword)
	}
	if w := serve(uc, http.MethodPost, "/api/definition/types", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("create without name: code = %d", w.Code)
	}
	w := serve(uc, http.MethodPut, "/api/definition/types/4", `{"name":"Bánh"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":4`) {
		t.Errorf("update: code=%d body=%s", w.Code, w.Body.String())
	}
	uc.deleteErr = apperr.Conflictf("TypeInUse", "product type %s is used by %d products", "Bánh", 2)
	if w := serve(uc, http.MethodDelete, "/api/definition/types/4", ""); w.Code != http.StatusConflict {
		t.Errorf("delete in use: code = %d", w.Code)
	}
}

func TestOptionRoutes(t *testing.T) {
	uc := &stubUseCase{}

	w := serve(uc, http.MethodPost, "/api/definition/options", `{"title":"Size","required":true,"values":[{"name":"M"},{"name":"L","price":5000}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
	}
	if uc.createdOption == nil || !uc.createdOption.Required || uc.createdOption.Values[1].Price != 5000 {
		t.Errorf("input = %+v", uc.createdOption)
	}
	if w := serve(uc, http.MethodPost, "/api/definition/options", `{"title":"Size","values":[]}`); w.Code != http.StatusBadRequest {
		t.Errorf("create without values: code = %d", w.Code)
	}
	if w := serve(uc, http.MethodGet, "/api/definition/options/9", ""); w.Code != http.StatusNotFound {
		t.Errorf("get missing: code = %d", w.Code)
	}
	if w := serve(uc, http.MethodGet, "/api/definition/options?q=size", ""); w.Code != http.StatusOK || uc.keyword != "size" {
		t.Errorf("list: code=%d keyword=%q", w.Code, uc.keyword)
	}
}

func TestProductOptionRoutes(t *testing.T) {
	uc := &stubUseCase{}

	w := serve(uc, http.MethodPut, "/api/product/7/options", `{"options":[{"option_id":1,"values":[10,11]}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("set: code=%d body=%s", w.Code, w.Body.String())
	}
	if uc.productInput.ProductID != 7 || len(uc.productInput.Options[0].Values) != 2 {
		t.Errorf("input = %+v", uc.productInput)
	}
	if w := serve(uc, http.MethodPut, "/api/product/7/options", `{"options":[{"option_id":1,"values":[]}]}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty values: code = %d", w.Code)
	}
	w = serve(uc, http.MethodGet, "/api/product/7/options", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"product_id":7`) {
		t.Errorf("get: code=%d body=%s", w.Code, w.Body.String())
	}
}

package serverhttp_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"numunit-service/internal/config"
	"numunit-service/internal/recognizer"
	"numunit-service/internal/resources"
	serverhttp "numunit-service/server/http"
)

func testConfig() config.Config {
	return config.Config{
		AllowOrigins:    []string{"*"},
		MaxUploadMB:     1,
		DefaultCulture:  "en-us",
		Cultures:        []string{"en-us", "es-es", "pt-br", "fr-fr"},
		EnglishFallback: true,
		RequestTimeout:  5 * time.Second,
		MaxTextLength:   200,
	}
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	cat, err := resources.Embedded()
	require.NoError(t, err)
	rec, err := recognizer.New(cat, recognizer.Options{
		DefaultCulture:  cfg.DefaultCulture,
		Cultures:        cfg.Cultures,
		EnglishFallback: cfg.EnglishFallback,
		MaxTextLength:   cfg.MaxTextLength,
	}, zerolog.Nop())
	require.NoError(t, err)
	return serverhttp.NewRouter(cfg, zerolog.Nop(), rec)
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

type entity struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	TypeName   string `json:"typeName"`
	Resolution struct {
		Value       string `json:"value"`
		Unit        string `json:"unit"`
		ISOCurrency string `json:"isoCurrency"`
	} `json:"resolution"`
}

type recognizeResponse struct {
	Culture string   `json:"culture"`
	Results []entity `json:"results"`
	Error   string   `json:"error"`
}

func TestHealthAndCultures(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = do(t, h, httptest.NewRequest(http.MethodGet, "/cultures", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Default  string `json:"default"`
		Cultures []struct {
			Code  string   `json:"code"`
			Kinds []string `json:"kinds"`
		} `json:"cultures"`
	}](t, rr)
	assert.Equal(t, "en-us", body.Default)
	require.Len(t, body.Cultures, 4)
	assert.Equal(t, "en-us", body.Cultures[0].Code)
	assert.Equal(t, []string{"currency", "dimension", "temperature", "age"}, body.Cultures[0].Kinds)
}

func TestRecognize(t *testing.T) {
	h := newServer(t)
	body := `{"text":"I am 25 years old and paid $30 for 5 km","kinds":["age","currency"]}`
	req := httptest.NewRequest(http.MethodPost, "/recognize", strings.NewReader(body))
	rr := do(t, h, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	res := decode[recognizeResponse](t, rr)
	assert.Equal(t, "en-us", res.Culture)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "25 years old", res.Results[0].Text)
	assert.Equal(t, "age", res.Results[0].TypeName)
	assert.Equal(t, "$30", res.Results[1].Text)
	assert.Equal(t, "USD", res.Results[1].Resolution.ISOCurrency)
}

func TestRecognize_AcceptLanguage(t *testing.T) {
	h := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/recognize", strings.NewReader(`{"text":"tengo 25 años"}`))
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
	res := decode[recognizeResponse](t, do(t, h, req))
	assert.Equal(t, "es-es", res.Culture)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "25 años", res.Results[0].Text)

	// явная культура важнее заголовка
	req = httptest.NewRequest(http.MethodPost, "/recognize", strings.NewReader(`{"text":"5 km","culture":"pt-BR"}`))
	req.Header.Set("Accept-Language", "es")
	res = decode[recognizeResponse](t, do(t, h, req))
	assert.Equal(t, "pt-br", res.Culture)
}

func TestRecognize_Errors(t *testing.T) {
	h := newServer(t)
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{"text":`, http.StatusBadRequest},
		{"unknown field", `{"text":"5 km","lang":"en"}`, http.StatusBadRequest},
		{"empty text", `{"text":"  "}`, http.StatusBadRequest},
		{"too long", `{"text":"` + strings.Repeat("a", 201) + `"}`, http.StatusBadRequest},
		{"unknown culture", `{"text":"5 km","culture":"de-DE"}`, http.StatusBadRequest},
		{"unknown kind", `{"text":"5 km","kinds":["speed"]}`, http.StatusBadRequest},
		{"body limit", `{"text":"` + strings.Repeat("a", 2<<20) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, httptest.NewRequest(http.MethodPost, "/recognize", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
			assert.NotEmpty(t, decode[map[string]string](t, rr)["error"])
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/recognize", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := do(t, h, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

const goodsCSV = "Item,Note,Price\nLamp,ships in 2 days,$30\nRope,12 meters long,20 dollars\n"

func TestRecognizeTable_JSON(t *testing.T) {
	h := newServer(t)
	body, ct := multipartBody(t, "goods.csv", []byte(goodsCSV), map[string]string{"kinds": "currency"})
	req := httptest.NewRequest(http.MethodPost, "/recognize/table", body)
	req.Header.Set("Content-Type", ct)
	rr := do(t, h, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rep := decode[struct {
		Culture string `json:"culture"`
		Rows    int    `json:"rows"`
		Cells   []struct {
			Line   int    `json:"line"`
			Column string `json:"column"`
		} `json:"cells"`
		Totals []struct {
			Unit  string  `json:"unit"`
			Sum   float64 `json:"sum"`
			Count int     `json:"count"`
		} `json:"totals"`
	}](t, rr)
	assert.Equal(t, "en-us", rep.Culture)
	assert.Equal(t, 2, rep.Rows)
	require.Len(t, rep.Cells, 2)
	assert.Equal(t, "Price", rep.Cells[0].Column)
	require.Len(t, rep.Totals, 1)
	assert.Equal(t, "Dollar", rep.Totals[0].Unit)
	assert.InDelta(t, 50.0, rep.Totals[0].Sum, 1e-9)
}

func TestRecognizeTable_XLSX(t *testing.T) {
	h := newServer(t)
	body, ct := multipartBody(t, "goods.csv", []byte(goodsCSV), map[string]string{"format": "xlsx", "columns": "note"})
	req := httptest.NewRequest(http.MethodPost, "/recognize/table", body)
	req.Header.Set("Content-Type", ct)
	rr := do(t, h, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "goods-units.xlsx")

	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12 meters", rows[1][2])
}

func TestRecognizeTable_Errors(t *testing.T) {
	h := newServer(t)
	tests := []struct {
		name     string
		filename string
		fields   map[string]string
		status   int
	}{
		{"unsupported", "notes.pdf", nil, http.StatusUnsupportedMediaType},
		{"bad format", "goods.csv", map[string]string{"format": "pdf"}, http.StatusBadRequest},
		{"bad kind", "goods.csv", map[string]string{"kinds": "currency,speed"}, http.StatusBadRequest},
		{"no column", "goods.csv", map[string]string{"columns": "weight"}, http.StatusBadRequest},
		{"bad header row", "goods.csv", map[string]string{"header_row": "0"}, http.StatusBadRequest},
		{"header row past end", "goods.csv", map[string]string{"header_row": "9"}, http.StatusBadRequest},
		{"broken xlsx", "goods.xlsx", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, tt.filename, []byte(goodsCSV), tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/recognize/table", body)
			req.Header.Set("Content-Type", ct)
			rr := do(t, h, req)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/recognize/table", strings.NewReader("plain"))
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusBadRequest, do(t, h, req).Code)
}

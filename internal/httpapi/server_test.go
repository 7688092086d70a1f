// internal/httpapi/server_test.go
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/siemens-plc/internal/platform"
	"github.com/tamzrod/siemens-plc/internal/wizard"
)

type fakeSubmitter struct {
	out    wizard.Outcome
	family wizard.Family
	form   map[string]any
	calls  int
}

func (f *fakeSubmitter) Submit(family wizard.Family, form map[string]any) wizard.Outcome {
	f.calls++
	f.family = family
	f.form = form
	return f.out
}

func newServer(sub *fakeSubmitter, locate func() (string, error)) http.Handler {
	log, _ := test.NewNullLogger()
	if locate == nil {
		locate = func() (string, error) { return "/opt/siemensplc/lib/linux_x86_64/libsnap7.so", nil }
	}
	return NewHandler(&Server{
		Wizard:   sub,
		Platform: platform.Descriptor{OS: platform.Linux, Arch: platform.X86_64},
		Locate:   locate,
		Metrics:  promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		Log:      log,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newServer(&fakeSubmitter{}, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsMounted(t *testing.T) {
	rec := do(t, newServer(&fakeSubmitter{}, nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlatform_Supported(t *testing.T) {
	rec := do(t, newServer(&fakeSubmitter{}, nil), http.MethodGet, "/platform", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlatformResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Supported)
	assert.Equal(t, "Linux", resp.OS)
	assert.Equal(t, "x86_64", resp.Arch)
	assert.Equal(t, "/opt/siemensplc/lib/linux_x86_64/libsnap7.so", resp.Library)
}

func TestPlatform_Unsupported(t *testing.T) {
	locate := func() (string, error) {
		return "", errors.Join(errors.New("Windows/x86_64"), platform.ErrUnsupportedPlatform)
	}
	rec := do(t, newServer(&fakeSubmitter{}, locate), http.MethodGet, "/platform", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlatformResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Supported)
	assert.Equal(t, "unsupported_platform", resp.Error)
}

func TestSubmitFlow_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		out  wizard.Outcome
		want int
	}{
		{"connected", wizard.Outcome{Kind: wizard.Connected, Record: &wizard.Record{ID: "s7_00"}}, http.StatusCreated},
		{"validation", wizard.Outcome{Kind: wizard.ValidationFailed, FieldErrors: map[string]string{"ip": "invalid_ip"}}, http.StatusUnprocessableEntity},
		{"connection", wizard.Outcome{Kind: wizard.ConnectionFailed, Reason: "cannot_connect"}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &fakeSubmitter{out: tc.out}
			rec := do(t, newServer(sub, nil), http.MethodPost, "/flows/s7", `{"ip":"10.0.0.5","rack":0,"slot":1}`)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, wizard.FamilyS7, sub.family)
			assert.Equal(t, float64(1), sub.form["slot"])

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, string(tc.out.Kind), got["kind"])
		})
	}
}

func TestSubmitFlow_UnknownFamily(t *testing.T) {
	sub := &fakeSubmitter{}
	rec := do(t, newServer(sub, nil), http.MethodPost, "/flows/s5", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_family")
	assert.Zero(t, sub.calls)
}

func TestSubmitFlow_BadBody(t *testing.T) {
	sub := &fakeSubmitter{}
	rec := do(t, newServer(sub, nil), http.MethodPost, "/flows/logo", `[1,2`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, sub.calls)
}

func TestSubmitFlow_ErrIsHidden(t *testing.T) {
	sub := &fakeSubmitter{out: wizard.Outcome{
		Kind:   wizard.ConnectionFailed,
		Reason: wizard.ReasonCannotConnect,
		Err:    errors.New("secret internals"),
	}}
	rec := do(t, newServer(sub, nil), http.MethodPost, "/flows/logo", `{"ip":"10.0.0.6"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret internals")
	assert.Contains(t, rec.Body.String(), "cannot_connect")
}

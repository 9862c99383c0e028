package alma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)

	return client, server
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080/almaws/v1",
			apiKey:  "test-key",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
		},
		{
			name:    "missing API key",
			baseURL: "http://localhost:8080/almaws/v1",
			apiKey:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestFetchInjectsAPIKey(t *testing.T) {
	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apikey")
		w.Write([]byte(`<ok/>`))
	})

	_, _, err := client.fetch(context.Background(), "/conf/general", fetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
}

func TestFetchLeavesCallerParamsUntouched(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ok/>`))
	})

	params := url.Values{}
	params.Set("limit", "10")

	_, _, err := client.fetch(context.Background(), "/bibs", fetchOptions{getParams: params})
	require.NoError(t, err)

	// The injected API key must not leak back into the caller's map.
	assert.Empty(t, params.Get("apikey"))
	assert.Equal(t, "10", params.Get("limit"))
}

func TestFetchServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<web_service_result><errorList><error><errorMessage>down</errorMessage></error></errorList></web_service_result>`))
	})

	_, status, err := client.fetch(context.Background(), "/bibs", fetchOptions{})
	require.Error(t, err)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestFetchBusinessError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<web_service_result>
			<errorList>
				<error>
					<errorCode>401861</errorCode>
					<errorMessage>User with identifier X was not found.</errorMessage>
				</error>
			</errorList>
		</web_service_result>`))
	})

	_, _, err := client.fetch(context.Background(), "/users/X", fetchOptions{})
	require.Error(t, err)

	var business *BusinessError
	require.ErrorAs(t, err, &business)
	assert.Equal(t, http.StatusBadRequest, business.Status)
	assert.Equal(t, "User with identifier X was not found.", business.Message)
}

func TestFetchBusinessErrorWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<web_service_result/>`))
	})

	_, _, err := client.fetch(context.Background(), "/users/X", fetchOptions{})
	require.Error(t, err)

	var business *BusinessError
	require.ErrorAs(t, err, &business)
	assert.Equal(t, NoErrorMessage, business.Message)
}

func TestFetchAllowedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<web_service_result><errorList><error><errorMessage>no such user</errorMessage></error></errorList></web_service_result>`))
	})

	doc, status, err := client.fetch(context.Background(), "/users/X", fetchOptions{
		allowedStatuses: []int{http.StatusBadRequest},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotNil(t, doc.FindElement("//errorMessage"))
}

func TestFetchNamespaceRewrite(t *testing.T) {
	// Alma bodies declare a namespace that collides with an attribute
	// of the same name; after the rewrite the document must parse and
	// its elements must be addressable without a namespace prefix.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<bibs xmlns="http://com/exlibris/urm/general/xmlbeans"><bib><mms_id>99123</mms_id></bib></bibs>`))
	})

	doc, _, err := client.fetch(context.Background(), "/bibs", fetchOptions{})
	require.NoError(t, err)

	elem := doc.FindElement("//bib/mms_id")
	require.NotNil(t, elem)
	assert.Equal(t, "99123", elem.Text())
}

func TestFetchParseError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<items><unclosed>`))
	})

	_, _, err := client.fetch(context.Background(), "/bibs", fetchOptions{})
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFetchEmptyBodyOnSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, _, err := client.fetch(context.Background(), "/bibs", fetchOptions{})
	require.Error(t, err)

	var serverErr *ServerError
	assert.ErrorAs(t, err, &serverErr)
}

func TestFetchNoContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, status, err := client.fetch(context.Background(), "/users/p/requests/r", fetchOptions{method: http.MethodDelete})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	server.Close()

	_, _, err = client.fetch(context.Background(), "/bibs", fetchOptions{})
	require.Error(t, err)

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestFetchAbsoluteURLPassesThrough(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`<ok/>`))
	}))
	defer server.Close()

	client, err := NewClient("http://unreachable.invalid", "test-key", zerolog.Nop())
	require.NoError(t, err)

	_, _, err = client.fetch(context.Background(), server.URL+"/absolute/path", fetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", gotPath)
}

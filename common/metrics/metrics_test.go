package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsvizRegistered(t *testing.T) {
	s, err := NewServer("127.0.0.1:0")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/statsviz/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

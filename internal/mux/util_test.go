package mux

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/room"
)

const testAdminKey = "test-admin-key"

func testMux(t *testing.T) (*Mux, *ledger.Ledger) {
	t.Helper()

	chips, err := ledger.New(logrus.StandardLogger(), ledger.NewMemoryStore())
	assert.NoError(t, err)

	registry := room.NewRegistry(logrus.StandardLogger(), chips, time.Duration(0))
	return NewMux("v-test", testAdminKey, chips, registry), chips
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, adminKey ...string) {
	t.Helper()

	if len(adminKey) > 0 {
		req.Header.Set("X-Admin-Key", adminKey[0])
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
		}
	}
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, adminKey ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode, adminKey...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, adminKey ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	assertDo(t, req, respObj, statusCode, adminKey...)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, statusCode int, adminKey ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, nil, statusCode, adminKey...)
}

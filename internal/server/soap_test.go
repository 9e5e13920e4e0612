package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/levi-tabosa/jukebox/internal/dispatch"
	"github.com/levi-tabosa/jukebox/internal/repositories"
	"github.com/levi-tabosa/jukebox/internal/shared"
	jbtest "github.com/levi-tabosa/jukebox/internal/testing"
)

const catalogNS = "http://example.com/demo"

// setupDispatchServer builds a router with the dispatch endpoint over a
// seeded in-memory catalog.
func setupDispatchServer(t *testing.T) (*BasicRouter, map[string]int64) {
	t.Helper()

	store := jbtest.SetupStore(t, repositories.SharedSongs)
	ana := jbtest.MustCreateUser(t, store, "Ana", jbtest.Int64(30))
	roadTrip := jbtest.MustCreatePlaylist(t, store, ana.ID, "Road Trip")
	aurora := jbtest.MustCreateSong(t, store, "Aurora", "V-Squared")
	jbtest.MustAttach(t, store, roadTrip.ID, aurora.ID)

	logger := shared.NewLogger(io.Discard)
	router := NewBasicRouter()
	router.Handler(NewDispatchHandler(dispatch.NewDispatcher(catalogNS, store), logger))

	return router, map[string]int64{"ana": ana.ID, "roadTrip": roadTrip.ID, "aurora": aurora.ID}
}

func postXML(router *BasicRouter, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ws", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDispatchEndpoint(t *testing.T) {
	t.Run("BarePayload", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		rec := postXML(router, `<getAllUsersRequest xmlns="http://example.com/demo"/>`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
			t.Errorf("expected text/xml content type, got %q", ct)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "Envelope") || !strings.Contains(body, "getAllUsersResponse") {
			t.Errorf("expected enveloped response, got %s", body)
		}
		if !strings.Contains(body, "Ana") {
			t.Errorf("expected user data in response, got %s", body)
		}
	})

	t.Run("EnvelopedPayload", func(t *testing.T) {
		router, ids := setupDispatchServer(t)

		body := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
			xmlns:d="http://example.com/demo">
			<soapenv:Header/>
			<soapenv:Body>
				<d:getPlaylistSongsRequest>
					<d:playlistId>` + itoa(ids["roadTrip"]) + `</d:playlistId>
				</d:getPlaylistSongsRequest>
			</soapenv:Body>
		</soapenv:Envelope>`

		rec := postXML(router, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Aurora") {
			t.Errorf("expected song data in response, got %s", rec.Body.String())
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("UnparseableBody", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		rec := postXML(router, `not xml at all`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Client") {
			t.Errorf("expected Client fault, got %s", rec.Body.String())
		}
	})

	t.Run("EmptyEnvelope", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		body := `<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body/></Envelope>`
		rec := postXML(router, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		rec := postXML(router, `<dropTablesRequest xmlns="http://example.com/demo"/>`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Fault") || !strings.Contains(body, "Client") {
			t.Errorf("expected Client fault, got %s", body)
		}
	})

	t.Run("MalformedParameter", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		body := `<getUserRequest xmlns="http://example.com/demo"><id>abc</id></getUserRequest>`
		rec := postXML(router, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("UserNotFound", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		body := `<getUserRequest xmlns="http://example.com/demo"><id>999999</id></getUserRequest>`
		rec := postXML(router, body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "faultstring") {
			t.Errorf("expected fault body, got %s", rec.Body.String())
		}
	})

	t.Run("FaultIsWellFormed", func(t *testing.T) {
		router, _ := setupDispatchServer(t)

		rec := postXML(router, `<dropTablesRequest xmlns="http://example.com/demo"/>`)
		root, err := dispatch.ParseBytes(rec.Body.Bytes())
		if err != nil {
			t.Fatalf("fault response should parse: %v", err)
		}
		fault := root.Find(soapNS, "Fault")
		if fault == nil {
			t.Fatal("expected Fault element in envelope")
		}
		if fault.Find(soapNS, "faultcode") == nil {
			t.Error("fault missing faultcode")
		}
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

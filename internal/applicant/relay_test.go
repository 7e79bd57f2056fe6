package applicant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mundolaboral-api/internal/forms"
	"mundolaboral-api/internal/handoff"
)

func TestHTTPRelaySubmitApplication(t *testing.T) {
	var gotPath, gotJobTitle, gotName, gotFileName string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotJobTitle = r.FormValue("jobTitle")
		gotName = r.FormValue("name")

		file, header, err := r.FormFile("resumeFile")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		gotFile, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	relay := NewHTTPRelay(srv.URL, 5*time.Second, nil)
	err := relay.SubmitApplication(context.Background(), &Submission{
		JobTitle: "Practicante de Marketing",
		Values: forms.Values{
			"name":  {"Ana Quispe"},
			"email": {"ana@example.com"},
		},
		Resume: &forms.File{Name: "cv.pdf", Size: 3, Data: []byte("pdf")},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/send-email", gotPath)
	assert.Equal(t, "Practicante de Marketing", gotJobTitle)
	assert.Equal(t, "Ana Quispe", gotName)
	assert.Equal(t, "cv.pdf", gotFileName)
	assert.Equal(t, []byte("pdf"), gotFile)
}

func TestHTTPRelaySurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Faltan campos requeridos: email",
		})
	}))
	defer srv.Close()

	relay := NewHTTPRelay(srv.URL, 5*time.Second, nil)
	err := relay.SubmitApplication(context.Background(), &Submission{JobTitle: "Analista", Values: forms.Values{}})
	require.Error(t, err)
	assert.Equal(t, "Faltan campos requeridos: email", err.Error())
}

func TestHTTPRelayNonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	relay := NewHTTPRelay(srv.URL, 5*time.Second, nil)
	err := relay.SubmitApplication(context.Background(), &Submission{JobTitle: "Analista", Values: forms.Values{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPRelayCompleteRegistrationPostsFormData(t *testing.T) {
	got := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/complete-registration", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, field := range []string{"name", "email", "jobTitle", "password"} {
			got[field] = r.FormValue(field)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	relay := NewHTTPRelay(srv.URL, 5*time.Second, nil)
	err := relay.CompleteRegistration(context.Background(), &Registration{
		Identity: handoff.Identity{Name: "Ana", Email: "ana@example.com", JobTitle: "Analista"},
		Password: "secreta9",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", got["name"])
	assert.Equal(t, "ana@example.com", got["email"])
	assert.Equal(t, "Analista", got["jobTitle"])
	assert.Equal(t, "secreta9", got["password"])
}

package Jira_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"timecop/Config"
	"timecop/Jira"
)

func newTestClient(serverURL string) *Jira.Client {
	return Jira.NewClient(Config.Config{
		JiraURL:      serverURL + "/",
		JiraUsername: "reporter",
		JiraPassword: "hunter2",
	})
}

func wantAuth(t *testing.T, r *http.Request) {
	t.Helper()
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("reporter:hunter2"))
	if got := r.Header.Get("Authorization"); got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
}

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantAuth(t, r)

		if r.URL.Path != "/rest/api/2/user/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("startAt") != "0" || q.Get("maxResults") != "1000" || q.Get("username") != "team" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "jdoe", "displayName": "Jane Doe", "emailAddress": "jdoe@example.com"},
			{"name": "bsmith", "displayName": "Bob Smith", "emailAddress": "bsmith@example.com"}
		]`))
	}))
	defer server.Close()

	users, err := newTestClient(server.URL).ListUsers("team")
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Name != "jdoe" || users[0].DisplayName != "Jane Doe" || users[0].EmailAddress != "jdoe@example.com" {
		t.Errorf("first user = %+v", users[0])
	}
}

func TestFetchWorklogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantAuth(t, r)

		if r.URL.Path != "/rest/tempo-timesheets/3/worklogs/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("dateFrom") != "2024-09-01" || q.Get("dateTo") != "2024-09-03" || q.Get("username") != "jdoe" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"timeSpentSeconds": 3600}, {"timeSpentSeconds": 7200}]`))
	}))
	defer server.Close()

	worklogs, err := newTestClient(server.URL).FetchWorklogs("jdoe", "2024-09-01", "2024-09-03")
	if err != nil {
		t.Fatalf("FetchWorklogs returned error: %v", err)
	}

	total := 0
	for _, w := range worklogs {
		total += w.TimeSpentSeconds
	}
	if total != 10800 {
		t.Errorf("total seconds = %d, want 10800", total)
	}
}

func TestNonOKStatusFailsWithRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListUsers("team")
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}

	var remoteErr *Jira.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error type = %T, want *Jira.RemoteError", err)
	}
	if remoteErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", remoteErr.Status, http.StatusForbidden)
	}
	if remoteErr.Endpoint == "" {
		t.Error("RemoteError should name the endpoint")
	}
}

func TestMalformedJSONFailsWithRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login page</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchWorklogs("jdoe", "2024-09-01", "2024-09-03")
	if err == nil {
		t.Fatal("expected an error for a non-JSON body")
	}

	var remoteErr *Jira.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error type = %T, want *Jira.RemoteError", err)
	}
}

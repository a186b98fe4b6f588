package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
)

func (s *BaseSuite) executeRequest(method, url string, body any) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	s.app.Routes().ServeHTTP(rr, req)

	return rr
}

func decodeBody[T any](s *BaseSuite, rr *httptest.ResponseRecorder) T {
	s.T().Helper()

	var out T
	s.Require().NoError(json.NewDecoder(rr.Body).Decode(&out))

	return out
}

func (s *BaseSuite) requireStatus(rr *httptest.ResponseRecorder, want int) {
	s.T().Helper()

	s.Require().Equal(want, rr.Code, "unexpected status, body: %s", rr.Body.String())
}

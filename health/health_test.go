package health_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sprintertech/svm-spoke/health"
	"github.com/stretchr/testify/suite"
)

type checkerFunc func() error

func (f checkerFunc) Healthy() error { return f() }

type HealthTestSuite struct {
	suite.Suite
}

func TestRunHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) get(port uint16) (int, error) {
	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		resp, err = http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (s *HealthTestSuite) Test_Healthy() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go health.StartHealthEndpoint(ctx, 19001, checkerFunc(func() error { return nil }))

	code, err := s.get(19001)

	s.Nil(err)
	s.Equal(http.StatusOK, code)
}

func (s *HealthTestSuite) Test_Unhealthy() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go health.StartHealthEndpoint(ctx, 19002, checkerFunc(func() error { return fmt.Errorf("store closed") }))

	code, err := s.get(19002)

	s.Nil(err)
	s.Equal(http.StatusServiceUnavailable, code)
}

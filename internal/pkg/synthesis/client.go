package synthesis

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/purpose-first/plans-as-code/internal/pkg/build"
)

const (
	requestTimeout        = 120 * time.Second
	httpTimeout           = 30 * time.Second
	idleConnTimeout       = 30 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 2 * time.Second
	keepAlive             = 20 * time.Second
	maxIdleConns          = 8
	retryCount            = 3
	retryWaitTime         = 500 * time.Millisecond
	retryWaitTimeMax      = 5 * time.Second
)

func createHTTPClient() *resty.Client {
	r := resty.New()
	r.SetHeader("User-Agent", fmt.Sprintf("plans-as-code/%s", build.BuildVersion))
	r.SetHeader("Content-Type", "application/json")
	r.SetTimeout(requestTimeout)
	r.SetRetryCount(retryCount)
	r.SetRetryWaitTime(retryWaitTime)
	r.SetRetryMaxWaitTime(retryWaitTimeMax)
	r.SetTransport(createTransport())
	r.AddRetryCondition(createRetry())
	return r
}

// createRetry - retry on network errors and transient HTTP errors.
func createRetry() func(response *resty.Response, err error) bool {
	return func(response *resty.Response, err error) bool {
		if err != nil && (response == nil || response.StatusCode() == 0) {
			return true
		}
		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
}

// createTransport with custom timeouts.
func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   httpTimeout,
		KeepAlive: keepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
		MaxIdleConns:          maxIdleConns,
	}
}

// Container healthcheck probe. Exits 0 when the API answers /healthz with 200.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

func main() {
	target := strings.TrimSpace(os.Getenv("HEALTHCHECK_URL"))
	if target == "" {
		addr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR"))
		if addr == "" {
			addr = ":8080"
		}
		if strings.HasPrefix(addr, ":") {
			addr = "localhost" + addr
		}
		target = "http://" + addr + "/healthz"
	}

	timeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("HEALTHCHECK_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			fmt.Fprintf(os.Stderr, "invalid HEALTHCHECK_TIMEOUT %q\n", raw)
			os.Exit(2)
		}
		timeout = parsed
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)

	client := &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout}
	if err := client.DoTimeout(req, resp, timeout); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck request failed: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		fmt.Fprintf(os.Stderr, "healthcheck returned status %d\n", resp.StatusCode())
		os.Exit(1)
	}
}

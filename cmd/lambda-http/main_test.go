package main

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestWithSourceIPReplacesClientHeader(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		Headers: map[string]string{
			"x-lambda-source-ip": "10.0.0.1",
			"X-Lambda-Source-IP": "10.0.0.2",
			"x-forwarded-for":    "10.0.0.3",
		},
	}
	req.RequestContext.HTTP.SourceIP = "198.51.100.9"

	out := withSourceIP(req)
	assert.Equal(t, map[string]string{
		"x-lambda-source-ip": "198.51.100.9",
		"x-forwarded-for":    "10.0.0.3",
	}, out.Headers)
	assert.Equal(t, "10.0.0.1", req.Headers["x-lambda-source-ip"])
}

package api

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

// LambdaHandler serves API Gateway HTTP API (payload v2) events with the
// server's routes. Non UTF-8 bodies, such as QR codes, come back base64
// encoded.
func (s *Server) LambdaHandler() func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return ginadapter.NewV2(s.engine).ProxyWithContext
}

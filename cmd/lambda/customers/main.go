package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"customers-api/pkg/lambda"
)

func main() {
	cm := lambda.GetConnectionManager()
	awslambda.StartWithOptions(cm.Handle, awslambda.WithEnableSIGTERM(cm.Shutdown))
}

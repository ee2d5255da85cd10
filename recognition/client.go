// Package recognition analyzes images through AWS Rekognition: label
// detection with taxonomy consolidation, face attribute normalization,
// identity matching against a reference library, and bounding-box
// annotation of the results.
package recognition

import (
	"errors"
	"log"

	"brutus/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// ErrInputNotFound marks a missing input image or reference directory.
// It is always detected locally, before any recognizer call is attempted.
var ErrInputNotFound = errors.New("input not found")

// NoFacesDetected is the in-band result for a comparison target without any
// detectable face. It is an expected outcome, not a failure.
const NoFacesDetected = "No faces detected"

// RecognizerAPI is the slice of the Rekognition API this package consumes.
type RecognizerAPI interface {
	DetectLabels(*rekognition.DetectLabelsInput) (*rekognition.DetectLabelsOutput, error)
	DetectFaces(*rekognition.DetectFacesInput) (*rekognition.DetectFacesOutput, error)
	CompareFaces(*rekognition.CompareFacesInput) (*rekognition.CompareFacesOutput, error)
}

// Client is the analysis entry point shared by the HTTP handlers. It holds
// the only outbound service handle in the system; the client is stateless
// and safe for concurrent use.
type Client struct {
	api RecognizerAPI
}

// NewClient builds a Client backed by a real Rekognition service client,
// using the shared AWS credentials config and the configured region.
func NewClient() (*Client, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(config.AWS_REGION)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Initialized Rekognition client in %s", config.AWS_REGION)
	return &Client{api: rekognition.New(sess)}, nil
}

// NewClientWithAPI builds a Client over any RecognizerAPI implementation.
func NewClientWithAPI(api RecognizerAPI) *Client {
	return &Client{api: api}
}

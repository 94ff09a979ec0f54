package services

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeLabels returns the top labels detected in raw image bytes.
func (r *RekognitionService) RecognizeLabels(imageData []byte) ([]string, error) {
	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageData},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}

// LooksLikePerson reports whether any detected label indicates a person is
// in the frame. Progress photos without a person are still accepted; the
// flag is advisory.
func (r *RekognitionService) LooksLikePerson(imageData []byte) (bool, []string, error) {
	labels, err := r.RecognizeLabels(imageData)
	if err != nil {
		return false, nil, err
	}
	for _, l := range labels {
		switch strings.ToLower(l) {
		case "person", "human", "people":
			return true, labels, nil
		}
	}
	return false, labels, nil
}

// Package speech converts text to spoken audio through AWS Polly.
package speech

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"brutus/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/polly"
)

// SynthesizerAPI is the slice of the Polly API this package consumes.
type SynthesizerAPI interface {
	SynthesizeSpeech(*polly.SynthesizeSpeechInput) (*polly.SynthesizeSpeechOutput, error)
}

// Generator turns text into MP3 files. Stateless, safe for concurrent use.
type Generator struct {
	api SynthesizerAPI
}

// NewGenerator builds a Generator backed by a real Polly service client.
func NewGenerator() (*Generator, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(config.AWS_REGION)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Initialized Polly client in %s", config.AWS_REGION)
	return &Generator{api: polly.New(sess)}, nil
}

// NewGeneratorWithAPI builds a Generator over any SynthesizerAPI implementation.
func NewGeneratorWithAPI(api SynthesizerAPI) *Generator {
	return &Generator{api: api}
}

// SSML wraps text in speak/prosody tags carrying the speech rate percentage.
func SSML(text string, rate int) string {
	return fmt.Sprintf("<speak><prosody rate='%d%%'>%s</prosody></speak>", rate, text)
}

// TextToSpeech synthesizes the text at the given rate with the configured
// voice and writes the MP3 audio to outputFile, creating parent directories
// as needed. Returns the output path.
func (g *Generator) TextToSpeech(text, outputFile string, rate int) (string, error) {
	out, err := g.api.SynthesizeSpeech(&polly.SynthesizeSpeechInput{
		Text:         aws.String(SSML(text, rate)),
		OutputFormat: aws.String(polly.OutputFormatMp3),
		VoiceId:      aws.String(config.SPEECH_VOICE),
		TextType:     aws.String(polly.TextTypeSsml),
	})
	if err != nil {
		return "", fmt.Errorf("synthesize speech: %w", err)
	}
	if out.AudioStream == nil {
		return "", errors.New("synthesize speech: response carried no audio stream")
	}
	defer out.AudioStream.Close()

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, out.AudioStream); err != nil {
		return "", err
	}
	log.Printf("Audio file saved to %s", outputFile)
	return outputFile, nil
}

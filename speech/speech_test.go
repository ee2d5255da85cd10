package speech

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/polly"
)

type fakeSynthesizer struct {
	synthesize func(*polly.SynthesizeSpeechInput) (*polly.SynthesizeSpeechOutput, error)
	lastInput  *polly.SynthesizeSpeechInput
}

func (f *fakeSynthesizer) SynthesizeSpeech(in *polly.SynthesizeSpeechInput) (*polly.SynthesizeSpeechOutput, error) {
	f.lastInput = in
	if f.synthesize == nil {
		return &polly.SynthesizeSpeechOutput{AudioStream: io.NopCloser(strings.NewReader("mp3-bytes"))}, nil
	}
	return f.synthesize(in)
}

func TestSSML(t *testing.T) {
	got := SSML("Hello, world!", 85)
	want := "<speak><prosody rate='85%'>Hello, world!</prosody></speak>"
	if got != want {
		t.Errorf("SSML() = %q, want %q", got, want)
	}
}

func TestTextToSpeech(t *testing.T) {
	fake := &fakeSynthesizer{}
	g := NewGeneratorWithAPI(fake)
	outputFile := filepath.Join(t.TempDir(), "audio", "hello.mp3")

	path, err := g.TextToSpeech("Hello", outputFile, 85)
	if err != nil {
		t.Fatalf("TextToSpeech: %v", err)
	}
	if path != outputFile {
		t.Errorf("returned path = %q, want %q", path, outputFile)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("output file holds %q, want the audio stream contents", data)
	}

	if got := aws.StringValue(fake.lastInput.Text); !strings.Contains(got, "rate='85%'") || !strings.Contains(got, "Hello") {
		t.Errorf("synthesis input text = %q, want SSML-wrapped text", got)
	}
	if got := aws.StringValue(fake.lastInput.TextType); got != polly.TextTypeSsml {
		t.Errorf("text type = %q, want ssml", got)
	}
	if got := aws.StringValue(fake.lastInput.OutputFormat); got != polly.OutputFormatMp3 {
		t.Errorf("output format = %q, want mp3", got)
	}
}

func TestTextToSpeechServiceError(t *testing.T) {
	fake := &fakeSynthesizer{
		synthesize: func(*polly.SynthesizeSpeechInput) (*polly.SynthesizeSpeechOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	g := NewGeneratorWithAPI(fake)
	if _, err := g.TextToSpeech("Hello", filepath.Join(t.TempDir(), "x.mp3"), 85); err == nil {
		t.Fatal("expected synthesis error to propagate")
	}
}

func TestTextToSpeechMissingAudioStream(t *testing.T) {
	fake := &fakeSynthesizer{
		synthesize: func(*polly.SynthesizeSpeechInput) (*polly.SynthesizeSpeechOutput, error) {
			return &polly.SynthesizeSpeechOutput{}, nil
		},
	}
	g := NewGeneratorWithAPI(fake)
	if _, err := g.TextToSpeech("Hello", filepath.Join(t.TempDir(), "x.mp3"), 85); err == nil {
		t.Fatal("expected error when response carries no audio stream")
	}
}

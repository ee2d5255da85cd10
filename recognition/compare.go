package recognition

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/rekognition"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var referenceExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// CompareWithLibrary compares the faces in the target image against a
// directory of reference identity images. Each reference file's stem names
// the person on it. The result holds at most one match per distinct person:
// the best similarity at or above threshold, no matter how many target
// faces matched that identity.
func (c *Client) CompareWithLibrary(targetPath, libraryDir string, threshold float64) (LibraryMatchResult, error) {
	if _, err := os.Stat(libraryDir); err != nil {
		if os.IsNotExist(err) {
			return LibraryMatchResult{}, fmt.Errorf("%w: %s", ErrInputNotFound, libraryDir)
		}
		return LibraryMatchResult{}, err
	}
	targetBytes, err := SourceImage(targetPath)
	if err != nil {
		return LibraryMatchResult{}, err
	}
	return c.compareWithLibraryBytes(targetBytes, libraryDir, threshold)
}

func (c *Client) compareWithLibraryBytes(targetBytes []byte, libraryDir string, threshold float64) (LibraryMatchResult, error) {
	detected, err := c.api.DetectFaces(&rekognition.DetectFacesInput{
		Image:      &rekognition.Image{Bytes: targetBytes},
		Attributes: []*string{aws.String(rekognition.AttributeDefault)},
	})
	if err != nil {
		return LibraryMatchResult{}, fmt.Errorf("detect faces: %w", err)
	}
	if len(detected.FaceDetails) == 0 {
		log.Print("No faces detected in comparison target")
		return LibraryMatchResult{Error: NoFacesDetected}, nil
	}

	entries, err := os.ReadDir(libraryDir)
	if err != nil {
		return LibraryMatchResult{}, err
	}

	// References are compared concurrently; the best match per person folds
	// into a shared map by max similarity. The comparisons are independent
	// reads, so ordering does not matter.
	best := cmap.New[PersonMatch]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	var callErr error

	for _, entry := range entries {
		if entry.IsDir() || !referenceExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		person := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		referencePath := filepath.Join(libraryDir, entry.Name())

		wg.Add(1)
		go func() {
			defer wg.Done()
			match, err := c.compareReference(referencePath, targetBytes, threshold)
			if err != nil {
				var aerr awserr.Error
				if errors.As(err, &aerr) && aerr.Code() == rekognition.ErrCodeInvalidParameterException {
					// Structurally invalid reference (e.g. no face in it):
					// skip this file, keep comparing the rest.
					log.Printf("Invalid reference image %s: %v", referencePath, err)
					return
				}
				if !errors.As(err, &aerr) {
					// Unreadable/undecodable reference file - skip it too.
					log.Printf("Skipping reference image %s: %v", referencePath, err)
					return
				}
				mu.Lock()
				if callErr == nil {
					callErr = err
				}
				mu.Unlock()
				return
			}
			if match == nil {
				return
			}
			match.Person = person
			best.Upsert(person, *match, func(exists bool, current, incoming PersonMatch) PersonMatch {
				if exists && current.Similarity >= incoming.Similarity {
					return current
				}
				return incoming
			})
		}()
	}
	wg.Wait()

	if callErr != nil {
		return LibraryMatchResult{}, fmt.Errorf("compare faces: %w", callErr)
	}

	matches := []PersonMatch{}
	for item := range best.IterBuffered() {
		matches = append(matches, item.Val)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Person < matches[j].Person
	})
	log.Printf("Face comparison completed, %d identities matched", len(matches))
	return LibraryMatchResult{MatchesFound: len(matches), Matches: matches}, nil
}

// compareReference runs one reference-vs-target comparison and returns the
// highest-similarity match, or nil when nothing cleared the threshold.
func (c *Client) compareReference(referencePath string, targetBytes []byte, threshold float64) (*PersonMatch, error) {
	referenceBytes, err := SourceImage(referencePath)
	if err != nil {
		return nil, err
	}
	out, err := c.api.CompareFaces(&rekognition.CompareFacesInput{
		SourceImage:         &rekognition.Image{Bytes: referenceBytes},
		TargetImage:         &rekognition.Image{Bytes: targetBytes},
		SimilarityThreshold: aws.Float64(threshold),
	})
	if err != nil {
		return nil, err
	}
	if len(out.FaceMatches) == 0 {
		return nil, nil
	}
	bestMatch := out.FaceMatches[0]
	for _, m := range out.FaceMatches[1:] {
		if aws.Float64Value(m.Similarity) > aws.Float64Value(bestMatch.Similarity) {
			bestMatch = m
		}
	}
	match := &PersonMatch{Similarity: aws.Float64Value(bestMatch.Similarity)}
	if bestMatch.Face != nil {
		match.Confidence = aws.Float64Value(bestMatch.Face.Confidence)
	}
	return match, nil
}

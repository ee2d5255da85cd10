package recognition

import (
	"fmt"
	"log"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// DetectLabels detects objects, scenes and events in the image and
// consolidates related labels to avoid redundancy. A recognizer failure is
// returned as-is; there is no partial consolidation.
func (c *Client) DetectLabels(path string, minConfidence float64) ([]ConsolidatedLabel, error) {
	imageBytes, err := SourceImage(path)
	if err != nil {
		return nil, err
	}
	return c.detectLabelsBytes(imageBytes, minConfidence)
}

func (c *Client) detectLabelsBytes(imageBytes []byte, minConfidence float64) ([]ConsolidatedLabel, error) {
	out, err := c.api.DetectLabels(&rekognition.DetectLabelsInput{
		Image:         &rekognition.Image{Bytes: imageBytes},
		MinConfidence: aws.Float64(minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}
	labels := consolidateLabels(out.Labels)
	log.Printf("Detected and consolidated %d labels", len(labels))
	return labels, nil
}

// consolidateLabels groups raw detections by base concept: the most general
// parent when a parent chain exists, the label's own name otherwise. Within
// a group the highest confidence wins, non-base names collect into
// RelatedLabels, and instances deduplicate on the exact bounding-box key.
// Every first-seen box gets the next label number off a counter shared
// across the whole image.
func consolidateLabels(raw []*rekognition.Label) []ConsolidatedLabel {
	type group struct {
		label   ConsolidatedLabel
		related map[string]struct{}
		seen    map[string]struct{}
	}

	groups := map[string]*group{}
	order := []string{}
	labelNumber := 0

	for _, l := range raw {
		name := aws.StringValue(l.Name)
		confidence := aws.Float64Value(l.Confidence)

		// The parent chain is ordered specific to general, so the base
		// concept is the last entry.
		base := name
		if len(l.Parents) > 0 {
			base = aws.StringValue(l.Parents[len(l.Parents)-1].Name)
		}

		g, ok := groups[base]
		if !ok {
			parents := make([]string, 0, len(l.Parents))
			for _, p := range l.Parents {
				parents = append(parents, aws.StringValue(p.Name))
			}
			g = &group{
				label: ConsolidatedLabel{
					Name:          base,
					Confidence:    confidence,
					RelatedLabels: []string{},
					Instances:     []LabelInstance{},
					Parents:       parents,
				},
				related: map[string]struct{}{},
				seen:    map[string]struct{}{},
			}
			groups[base] = g
			order = append(order, base)
		}

		if name != base {
			g.related[name] = struct{}{}
		}
		if confidence > g.label.Confidence {
			g.label.Confidence = confidence
		}

		for _, instance := range l.Instances {
			if instance.BoundingBox == nil {
				continue
			}
			box := boxFromAWS(instance.BoundingBox)
			key := box.Key()
			if _, dup := g.seen[key]; dup {
				continue
			}
			g.seen[key] = struct{}{}
			labelNumber++
			g.label.Instances = append(g.label.Instances, LabelInstance{
				BoundingBox: box,
				Confidence:  aws.Float64Value(instance.Confidence),
				LabelNumber: labelNumber,
			})
		}
	}

	result := make([]ConsolidatedLabel, 0, len(order))
	for _, base := range order {
		g := groups[base]
		for related := range g.related {
			g.label.RelatedLabels = append(g.label.RelatedLabels, related)
		}
		sort.Strings(g.label.RelatedLabels)
		result = append(result, g.label)
	}

	// Stable: equal confidences keep first-seen order.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	return result
}

// Package framesource reads segmented shapes of a frame sequence from YAML.
//
// Format:
//
//	frames:
//	  - - {x: 10, y: 10, width: 20, height: 20}
//	    - {x: 50, y: 10, width: 20, height: 20}
//	  - []
//
// Every item of "frames" is a frame; every item of a frame is a shape's bounding box.
package framesource

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/LdDl/cell-lineage/lineage"
)

type box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type document struct {
	Frames [][]box `yaml:"frames"`
}

// Load reads frames from YAML file
func Load(path string) (lineage.Frames, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read frames file")
	}
	return Parse(data)
}

// Parse decodes frames from YAML bytes. Boxes with negative width or height are rejected
func Parse(data []byte) (lineage.Frames, error) {
	doc := document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse frames YAML")
	}
	rects := make([][]lineage.Rectangle, len(doc.Frames))
	for t, boxes := range doc.Frames {
		rects[t] = make([]lineage.Rectangle, len(boxes))
		for i, b := range boxes {
			if b.Width < 0 || b.Height < 0 {
				return nil, errors.Errorf("frame %d, shape %d: negative size %fx%f", t, i, b.Width, b.Height)
			}
			rects[t][i] = lineage.NewRect(b.X, b.Y, b.Width, b.Height)
		}
	}
	return lineage.NewFramesFromRects(rects), nil
}

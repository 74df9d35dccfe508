// internal/export/schema.go
package export

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateNested checks raw JSON against the nested document schema.
func ValidateNested(data []byte) error {
	return validate(nestedSchema, data)
}

// ValidateFlat checks raw JSON against the flat document schema.
func ValidateFlat(data []byte) error {
	return validate(flatSchema, data)
}

func validate(schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("error validating export document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("export document failed schema validation: %s", strings.Join(issues, "; "))
}

const snapshotSchema = `{
  "type": "object",
  "required": ["rss", "heapTotal", "heapUsed", "external"],
  "properties": {
    "rss": {"type": "number", "minimum": 0},
    "heapTotal": {"type": "number", "minimum": 0},
    "heapUsed": {"type": "number", "minimum": 0},
    "external": {"type": "number", "minimum": 0}
  }
}`

const deltaSchema = `{
  "type": "object",
  "required": ["rss", "heapTotal", "heapUsed", "external"],
  "properties": {
    "rss": {"type": "number"},
    "heapTotal": {"type": "number"},
    "heapUsed": {"type": "number"},
    "external": {"type": "number"}
  }
}`

var nestedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["metadata", "results", "summary"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["testDate", "hostVersion", "platform", "arch", "totalTests"],
      "properties": {
        "testDate": {"type": "string"},
        "hostVersion": {"type": "string"},
        "platform": {"type": "string"},
        "arch": {"type": "string"},
        "totalTests": {"type": "integer", "minimum": 0}
      }
    },
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "timestamp", "duration", "memory"],
        "properties": {
          "name": {"type": "string"},
          "timestamp": {"type": "string"},
          "duration": {
            "type": "object",
            "required": ["ms", "seconds"],
            "properties": {
              "ms": {"type": "number", "minimum": 0},
              "seconds": {"type": "number", "minimum": 0}
            }
          },
          "memory": {
            "type": "object",
            "required": ["start", "end", "delta"],
            "properties": {
              "start": ` + snapshotSchema + `,
              "end": ` + snapshotSchema + `,
              "delta": ` + deltaSchema + `
            }
          }
        }
      }
    },
    "summary": {
      "type": "object",
      "required": ["totalDuration", "averageDuration", "totalMemoryDelta", "averageMemoryDelta"],
      "properties": {
        "totalDuration": {"type": "number"},
        "averageDuration": {"type": "number"},
        "totalMemoryDelta": {"type": "number"},
        "averageMemoryDelta": {"type": "number"}
      }
    }
  }
}`

var flatSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["config", "metrics", "stats"],
  "properties": {
    "config": {
      "type": "object",
      "required": ["verbose", "warmupIterations", "iterations"],
      "properties": {
        "verbose": {"type": "boolean"},
        "warmupIterations": {"type": "integer", "minimum": 0},
        "iterations": {"type": "integer", "minimum": 1}
      }
    },
    "metrics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["operation", "timeMs", "memoryMB", "peakMemoryMB", "timestamp"],
        "properties": {
          "operation": {"type": "string"},
          "timeMs": {"type": "number", "minimum": 0},
          "memoryMB": {"type": "number"},
          "peakMemoryMB": {"type": "number", "minimum": 0},
          "timestamp": {"type": "string"}
        }
      }
    },
    "stats": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["operation", "count", "avgTimeMs", "minTimeMs", "maxTimeMs", "avgMemoryMB", "peakMemoryMB"],
        "properties": {
          "operation": {"type": "string"},
          "count": {"type": "integer", "minimum": 1},
          "avgTimeMs": {"type": "number", "minimum": 0},
          "minTimeMs": {"type": "number", "minimum": 0},
          "maxTimeMs": {"type": "number", "minimum": 0},
          "avgMemoryMB": {"type": "number"},
          "peakMemoryMB": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

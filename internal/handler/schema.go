package handler

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// activitySchema validates the ingest payload before it is converted into
// the typed Activity value. The core never operates on loosely-typed maps;
// this is the boundary where shape is enforced.
const activitySchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["activityId", "userId", "activityType", "distanceMeters", "durationSeconds", "endDate"],
	"properties": {
		"activityId": {"type": "string", "minLength": 1, "maxLength": 128},
		"userId": {"type": "string", "minLength": 1, "maxLength": 128},
		"activityType": {"enum": ["run", "bike", "walk", "hike", "otherOutdoor", "indoor"]},
		"distanceMeters": {"type": "number", "minimum": 0},
		"durationSeconds": {"type": "number", "minimum": 0},
		"calories": {"type": "number", "minimum": 0},
		"averageHeartRate": {"type": "number", "minimum": 0},
		"locationLabel": {"type": "string", "maxLength": 256},
		"endDate": {"type": "string", "format": "date-time"},
		"route": {
			"type": "array",
			"maxItems": 100000,
			"items": {
				"type": "object",
				"required": ["latitude", "longitude"],
				"properties": {
					"latitude": {"type": "number", "minimum": -90, "maximum": 90},
					"longitude": {"type": "number", "minimum": -180, "maximum": 180},
					"timestamp": {"type": "string", "format": "date-time"}
				}
			}
		}
	}
}`

var activitySchema = jsonschema.MustCompileString("activity.json", activitySchemaJSON)

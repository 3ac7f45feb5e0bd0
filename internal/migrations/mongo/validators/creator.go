package validators

import "go.mongodb.org/mongo-driver/bson"

var CreatorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"email",
			"newsletter_name",
			"slug",
			"timezone",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			// Auth provider user id (UUID).
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"newsletter_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"slug": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
				"pattern":   `^[a-z0-9]+(-[a-z0-9]+)*$`,
			},

			"timezone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

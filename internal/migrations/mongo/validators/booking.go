package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"slot_id",
			"creator_id",
			"sponsor_name",
			"sponsor_email",
			"website_url",
			"ad_copy",
			"payment_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"slot_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"creator_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"sponsor_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"sponsor_email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"website_url": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"ad_copy": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1000,
			},

			"creative_file_url": bson.M{
				"bsonType": "string",
			},

			// Rows only exist after payment confirmation.
			"payment_status": bson.M{
				"enum": []string{"paid"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

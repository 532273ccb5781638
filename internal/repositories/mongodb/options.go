package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsFindSort(sort bson.M) *options.FindOptions {
	return options.Find().SetSort(sort)
}

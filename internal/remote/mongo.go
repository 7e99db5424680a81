package remote

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentstation/utc"

	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
)

// Mongo implements Client against a MongoDB facilities collection.
type Mongo struct {
	collection *mongo.Collection
}

var _ Client = (*Mongo)(nil)

// NewMongoClient connects to MongoDB and pings it.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.WrapRemote("connect", "", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.WrapRemote("ping", "", err)
	}

	return client, nil
}

// NewMongo creates a facilities repository on the given database.
func NewMongo(ctx context.Context, db *mongo.Database) *Mongo {
	collection := db.Collection("facilities")

	// One facility per normalized name per airport
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "location_code", Value: 1},
			{Key: "normalized_name", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &Mongo{collection: collection}
}

// facilityDoc is the wire shape of a record in MongoDB. Local-only state
// (PendingPush) never crosses this boundary.
type facilityDoc struct {
	ID             string     `bson:"_id"`
	LocationCode   string     `bson:"location_code"`
	Name           string     `bson:"name"`
	NormalizedName string     `bson:"normalized_name"`
	Phone          *string    `bson:"phone,omitempty"`
	Frequency      *string    `bson:"frequency,omitempty"`
	Website        *string    `bson:"website,omitempty"`
	JetAPrice      *float64   `bson:"jet_a_price,omitempty"`
	AvgasPrice     *float64   `bson:"avgas_price,omitempty"`
	FuelPriceDate  *time.Time `bson:"fuel_price_date,omitempty"`
	FuelReporter   *string    `bson:"fuel_price_reporter,omitempty"`
	HasCrewCar     bool       `bson:"has_crew_car"`
	HasCrewLounge  bool       `bson:"has_crew_lounge"`
	HasCatering    bool       `bson:"has_catering"`
	HasMaintenance bool       `bson:"has_maintenance"`
	HasHangars     bool       `bson:"has_hangars"`
	HasDeice       bool       `bson:"has_deice"`
	HasOxygen      bool       `bson:"has_oxygen"`
	HasGPU         bool       `bson:"has_gpu"`
	HasLavService  bool       `bson:"has_lav_service"`
	HandlingFee    *float64   `bson:"handling_fee,omitempty"`
	OvernightFee   *float64   `bson:"overnight_fee,omitempty"`
	RampFee        *float64   `bson:"ramp_fee,omitempty"`
	RampFeeWaived  *bool      `bson:"ramp_fee_waived,omitempty"`
	AvgRating      *float64   `bson:"avg_rating,omitempty"`
	RatingCount    *int       `bson:"rating_count,omitempty"`
	LastUpdated    time.Time  `bson:"last_updated"`
	UpdatedBy      string     `bson:"updated_by,omitempty"`
	IsVerified     bool       `bson:"is_verified"`
}

func toDoc(record fbo.Record, id string) facilityDoc {
	doc := facilityDoc{
		ID:             id,
		LocationCode:   record.LocationCode,
		Name:           record.Name,
		NormalizedName: record.Key(),
		Phone:          record.Phone,
		Frequency:      record.Frequency,
		Website:        record.Website,
		JetAPrice:      record.JetAPrice,
		AvgasPrice:     record.AvgasPrice,
		FuelReporter:   record.FuelPriceReporter,
		HasCrewCar:     record.HasCrewCar,
		HasCrewLounge:  record.HasCrewLounge,
		HasCatering:    record.HasCatering,
		HasMaintenance: record.HasMaintenance,
		HasHangars:     record.HasHangars,
		HasDeice:       record.HasDeice,
		HasOxygen:      record.HasOxygen,
		HasGPU:         record.HasGPU,
		HasLavService:  record.HasLavService,
		HandlingFee:    record.HandlingFee,
		OvernightFee:   record.OvernightFee,
		RampFee:        record.RampFee,
		RampFeeWaived:  record.RampFeeWaived,
		AvgRating:      record.AvgRating,
		RatingCount:    record.RatingCount,
		LastUpdated:    record.LastUpdated.Time,
		UpdatedBy:      record.UpdatedBy,
		IsVerified:     record.IsVerified,
	}
	if record.FuelPriceDate != nil {
		t := record.FuelPriceDate.Time
		doc.FuelPriceDate = &t
	}
	return doc
}

func fromDoc(doc facilityDoc) fbo.Record {
	id := doc.ID
	record := fbo.Record{
		LocationCode:      doc.LocationCode,
		Name:              doc.Name,
		Phone:             doc.Phone,
		Frequency:         doc.Frequency,
		Website:           doc.Website,
		JetAPrice:         doc.JetAPrice,
		AvgasPrice:        doc.AvgasPrice,
		FuelPriceReporter: doc.FuelReporter,
		HasCrewCar:        doc.HasCrewCar,
		HasCrewLounge:     doc.HasCrewLounge,
		HasCatering:       doc.HasCatering,
		HasMaintenance:    doc.HasMaintenance,
		HasHangars:        doc.HasHangars,
		HasDeice:          doc.HasDeice,
		HasOxygen:         doc.HasOxygen,
		HasGPU:            doc.HasGPU,
		HasLavService:     doc.HasLavService,
		HandlingFee:       doc.HandlingFee,
		OvernightFee:      doc.OvernightFee,
		RampFee:           doc.RampFee,
		RampFeeWaived:     doc.RampFeeWaived,
		AvgRating:         doc.AvgRating,
		RatingCount:       doc.RatingCount,
		LastUpdated:       utc.New(doc.LastUpdated),
		UpdatedBy:         doc.UpdatedBy,
		RemoteID:          &id,
		IsVerified:        doc.IsVerified,
	}
	if doc.FuelPriceDate != nil {
		t := utc.New(*doc.FuelPriceDate)
		record.FuelPriceDate = &t
	}
	return record
}

// Fetch returns all remote records for a location code.
func (m *Mongo) Fetch(ctx context.Context, code string) ([]fbo.Record, error) {
	cursor, err := m.collection.Find(ctx, bson.M{"location_code": code})
	if err != nil {
		return nil, errors.WrapRemote("fetch", code, err)
	}
	defer cursor.Close(ctx)

	var docs []facilityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.WrapRemote("fetch", code, err)
	}

	records := make([]fbo.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, fromDoc(doc))
	}
	return records, nil
}

// Save creates a record remotely and returns the assigned identifier.
func (m *Mongo) Save(ctx context.Context, record fbo.Record) (string, error) {
	id := primitive.NewObjectID().Hex()
	if _, err := m.collection.InsertOne(ctx, toDoc(record, id)); err != nil {
		return "", errors.WrapRemote("save", record.LocationCode, err)
	}
	return id, nil
}

// Update replaces the remote record identified by record.RemoteID.
func (m *Mongo) Update(ctx context.Context, record fbo.Record) error {
	if record.RemoteID == nil {
		return errors.NewValidationError("remote_id", "", "record has no remote identifier")
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"_id": *record.RemoteID}
	if _, err := m.collection.ReplaceOne(ctx, filter, toDoc(record, *record.RemoteID), opts); err != nil {
		return errors.WrapRemote("update", record.LocationCode, err)
	}
	return nil
}

// Delete removes the remote record with the given identifier.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.WrapRemote("delete", "", err)
	}
	return nil
}

// Package mongodb using a mongo db as a index engine for the metadata search
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIndex name of the index component
const MongoIndex = "mongodb"

const (
	hashKey        = "resourcehash"
	collectionName = "metadata"
	timeout        = 5 * time.Second
)

// checking interface compatibility
var _ interfaces.Index = &Index{}

var log = logging.New().WithName("mongodb")

// Config configuration to the mongodb instance
type Config struct {
	Hosts        []string `json:"hosts"`
	Database     string   `json:"database"`
	AuthDatabase string   `json:"authdatabase"`
	Username     string   `json:"username"`
	Password     string   `json:"password"`
}

// Index the mongo index
type Index struct {
	Config Config
	client *driver.Client
	col    *driver.Collection
}

// New creates a new index from the storage properties
func New(p map[string]any) (*Index, error) {
	jsonStr, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(jsonStr, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Hosts) == 0 {
		return nil, errors.New("no mongo hosts found. check config")
	}
	return &Index{Config: cfg}, nil
}

// Init connecting to the mongo and creating the unique index on the resource hash
func (m *Index) Init() error {
	rb := bson.NewRegistryBuilder()
	rb.RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{}))

	uri := fmt.Sprintf("mongodb://%s", strings.Join(m.Config.Hosts, ","))
	opts := options.Client().SetRegistry(rb.Build())
	opts.ApplyURI(uri)
	if m.Config.Username != "" {
		opts.Auth = &options.Credential{
			Username:   m.Config.Username,
			Password:   m.Config.Password,
			AuthSource: m.Config.AuthDatabase}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return err
	}
	m.client = client
	m.col = client.Database(m.Config.Database).Collection(collectionName)

	lopts := options.ListIndexes().SetMaxTime(2 * time.Second)
	cursor, err := m.col.Indexes().List(ctx, lopts)
	if err != nil {
		return err
	}
	var result []bson.M
	if err = cursor.All(ctx, &result); err != nil {
		return err
	}
	for _, i := range result {
		if name, ok := i["name"].(string); ok && strings.EqualFold(name, hashKey) {
			return nil
		}
	}
	log.Info("no index found, creating one")
	mod := driver.IndexModel{
		Keys:    bson.M{hashKey: 1},
		Options: options.Index().SetUnique(true).SetName(hashKey),
	}
	_, err = m.col.Indexes().CreateOne(ctx, mod)
	return err
}

// Search the query is a mongo filter in extended json, e.g. {"pagecount": {"$gt": 2}}
func (m *Index) Search(query string, callback func(hash string) bool) error {
	var bd bson.M
	query = strings.TrimSpace(query)
	if err := bson.UnmarshalExtJSON([]byte(query), true, &bd); err != nil {
		return err
	}
	if bd == nil {
		return errors.New("no filter defined")
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cur, err := m.col.Find(ctx, bd, options.Find())
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		elem := struct {
			Hash string `bson:"resourcehash"`
		}{}
		if err := cur.Decode(&elem); err != nil {
			return err
		}
		if !callback(elem.Hash) {
			break
		}
	}
	return cur.Err()
}

// Index inserting or replacing the metadata document of the resource
func (m *Index) Index(hash string, md map[string]any) error {
	bd := toDoc(hash, md)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	res, err := m.col.ReplaceOne(ctx, bson.M{hashKey: hash}, bd, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	log.Debugf("indexed %s, modified: %d, upserted: %v", hash, res.ModifiedCount, res.UpsertedID)
	return nil
}

// Delete removes the document of the resource
func (m *Index) Delete(hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := m.col.DeleteOne(ctx, bson.M{hashKey: hash})
	return err
}

// Close disconnecting from the mongo
func (m *Index) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(context.Background())
}

// toDoc the metadata as mongo document, the base id is not part of the document
func toDoc(hash string, md map[string]any) bson.D {
	bd := bson.D{{Key: hashKey, Value: hash}}
	for k, v := range md {
		if k == hashKey || k == "id" {
			continue
		}
		bd = append(bd, bson.E{Key: k, Value: v})
	}
	return bd
}

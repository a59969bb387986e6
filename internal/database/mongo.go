package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"easywork/entity"
	"easywork/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionUsers         = "users"
	collectionOrganizations = "organizations"
	collectionCustomers     = "customers"
	collectionQuotes        = "quotes"
	collectionInvoices      = "invoices"
	collectionSendLog       = "send_log"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) *MongoDB {
	if !conf.Mongo.Enabled {
		return nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("mongodb find: %w", err)
}

func documentCollection(kind entity.DocumentKind) (string, error) {
	switch kind {
	case entity.KindQuote:
		return collectionQuotes, nil
	case entity.KindInvoice:
		return collectionInvoices, nil
	}
	return "", fmt.Errorf("unknown document kind: %q", kind)
}

func documentFilter(orgId string, number int64) bson.D {
	return bson.D{{"organization_id", orgId}, {"number", number}}
}

func (m *MongoDB) GetUser(token string) (*entity.User, error) {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{"token", token}}
	var user entity.User
	err = collection.FindOne(m.ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrganization returns nil without error when the organization does not exist.
func (m *MongoDB) GetOrganization(ctx context.Context, orgId string) (*entity.Organization, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionOrganizations)
	var org entity.Organization
	err = collection.FindOne(ctx, bson.D{{"id", orgId}}).Decode(&org)
	if err != nil {
		return nil, m.findError(err)
	}
	return &org, nil
}

func (m *MongoDB) GetCustomer(ctx context.Context, orgId, id string) (*entity.Customer, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionCustomers)
	filter := bson.D{{"organization_id", orgId}, {"id", id}}
	var customer entity.Customer
	err = collection.FindOne(ctx, filter).Decode(&customer)
	if err != nil {
		return nil, m.findError(err)
	}
	return &customer, nil
}

// GetDocument loads a quote or invoice with its lines in stored order.
func (m *MongoDB) GetDocument(ctx context.Context, orgId string, kind entity.DocumentKind, number int64) (*entity.DocumentRecord, error) {
	name, err := documentCollection(kind)
	if err != nil {
		return nil, err
	}
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(name)
	var record entity.DocumentRecord
	err = collection.FindOne(ctx, documentFilter(orgId, number)).Decode(&record)
	if err != nil {
		return nil, m.findError(err)
	}
	return &record, nil
}

func (m *MongoDB) SaveTotals(ctx context.Context, orgId string, kind entity.DocumentKind, number int64, totals entity.StoredTotals) error {
	name, err := documentCollection(kind)
	if err != nil {
		return err
	}
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(name)
	update := bson.D{{"$set", bson.D{
		{"subtotal", totals.Subtotal},
		{"vat_amount", totals.VatAmount},
		{"total", totals.Total},
		{"cost", totals.Cost},
		{"profit", totals.Profit},
		{"margin", totals.Margin},
	}}}
	_, err = collection.UpdateOne(ctx, documentFilter(orgId, number), update)
	return err
}

// MarkSent moves a draft to sent; documents in later states only get the timestamp.
func (m *MongoDB) MarkSent(ctx context.Context, orgId string, kind entity.DocumentKind, number int64, at time.Time) error {
	name, err := documentCollection(kind)
	if err != nil {
		return err
	}
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(name)
	_, err = collection.UpdateOne(ctx, documentFilter(orgId, number), bson.D{{"$set", bson.D{{"sent_at", at}}}})
	if err != nil {
		return err
	}
	draft := append(documentFilter(orgId, number), bson.E{Key: "status", Value: entity.StatusDraft})
	_, err = collection.UpdateOne(ctx, draft, bson.D{{"$set", bson.D{{"status", entity.StatusSent}}}})
	return err
}

func (m *MongoDB) SaveSendLog(ctx context.Context, log *entity.SendLog) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSendLog)
	_, err = collection.InsertOne(ctx, log)
	return err
}

func (m *MongoDB) GetTelegramUsers() ([]*entity.User, error) {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{"telegram_id", bson.D{{"$gt", 0}}}, {"telegram_enabled", true}}
	cursor, err := collection.Find(m.ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(m.ctx)

	var users []*entity.User
	err = cursor.All(m.ctx, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoDB) GetUserByTelegramId(id int64) (*entity.User, error) {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionUsers)
	var user entity.User
	err = collection.FindOne(m.ctx, bson.D{{"telegram_id", id}}).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

func (m *MongoDB) SetTelegramEnabled(id int64, isActive bool, logLevel int) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{"telegram_id", id}}
	update := bson.D{{"$set", bson.D{
		{"telegram_enabled", isActive},
		{"log_level", logLevel},
	}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}

func (m *MongoDB) SetTelegramTopics(id int64, topics []string) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{"telegram_id", id}}
	update := bson.D{{"$set", bson.D{{"telegram_topics", topics}}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}

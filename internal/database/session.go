package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"CampaignBot/flow"
)

// SaveSession persists a session state, creating or replacing it.
func (m *MongoDB) SaveSession(ctx context.Context, state *flow.SessionState) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	state.UpdatedAt = time.Now()

	filter := bson.D{{Key: "session_id", Value: state.SessionID}}
	update := bson.D{{Key: "$set", Value: state}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}

	return nil
}

// LoadSession retrieves a session state. An expired session is removed and
// reported as absent.
func (m *MongoDB) LoadSession(ctx context.Context, sessionID string) (*flow.SessionState, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "session_id", Value: sessionID}}

	var state flow.SessionState
	err = collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	if m.sessionTTL > 0 && time.Since(state.UpdatedAt) > m.sessionTTL {
		_, _ = collection.DeleteOne(ctx, filter)
		return nil, nil
	}

	return &state, nil
}

// DeleteSession removes a session state.
func (m *MongoDB) DeleteSession(ctx context.Context, sessionID string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "session_id", Value: sessionID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}

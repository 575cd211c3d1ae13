// The redisutils package simplifies and automates recurring operations like
// connecting to, formatting for, and parsing from Redis.
package redisutils

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SetupClient() initializes a new Redis client for the specified address.
func SetupClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// SetupTestClient() initializes a new Redis client for tests.
func SetupTestClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
}

// CleanupRedis() cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(client *redis.Client) {
	client.FlushAll(context.Background())
}

// FormatID() formats a nodeID (uint32) into a string.
func FormatID(ID uint32) string {
	return strconv.FormatUint(uint64(ID), 10)
}

// FormatIDs() formats a slice of nodeIDs into a slice of strings.
func FormatIDs(IDs []uint32) []string {
	strIDs := make([]string, len(IDs))
	for i, ID := range IDs {
		strIDs[i] = FormatID(ID)
	}

	return strIDs
}

// ParseID() parses a nodeID from the specified string.
func ParseID(strVal string) (uint32, error) {
	parsedVal, err := strconv.ParseUint(strVal, 10, 32)
	return uint32(parsedVal), err
}

// ParseIDs() parses a slice of nodeIDs from the specified strings.
func ParseIDs(strVals []string) ([]uint32, error) {
	IDs := make([]uint32, len(strVals))
	for i, strVal := range strVals {
		ID, err := ParseID(strVal)
		if err != nil {
			return nil, err
		}

		IDs[i] = ID
	}

	return IDs, nil
}

// ParseFloat64() parses a float64 from the specified string.
func ParseFloat64(strVal string) (float64, error) {
	return strconv.ParseFloat(strVal, 64)
}

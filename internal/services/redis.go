package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elitecars/rental-backend/internal/models"
)

var RedisClient *redis.Client

const settingsCacheKey = "settings:global"

// InitRedis initializes the Redis client
func InitRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// SetCarAvailability mirrors a car's availability flag into Redis
func SetCarAvailability(ctx context.Context, carID uint, available bool) error {
	key := fmt.Sprintf("car:available:%d", carID)
	value := "true"
	if !available {
		value = "false"
	}
	return RedisClient.Set(ctx, key, value, time.Hour).Err()
}

// SetDriverAvailability mirrors a driver's availability flag into Redis
func SetDriverAvailability(ctx context.Context, driverID uint, available bool) error {
	key := fmt.Sprintf("driver:available:%d", driverID)
	value := "true"
	if !available {
		value = "false"
	}
	return RedisClient.Set(ctx, key, value, time.Hour).Err()
}

// GetCarAvailability reads the mirrored car availability flag
func GetCarAvailability(ctx context.Context, carID uint) (bool, error) {
	key := fmt.Sprintf("car:available:%d", carID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result == "true", nil
}

// CacheSettings stores the global settings record so public views do not
// hit the database on every request
func CacheSettings(ctx context.Context, settings *models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, settingsCacheKey, data, 10*time.Minute).Err()
}

// GetCachedSettings retrieves the cached settings record, if present
func GetCachedSettings(ctx context.Context) (*models.Settings, error) {
	data, err := RedisClient.Get(ctx, settingsCacheKey).Result()
	if err != nil {
		return nil, err
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// InvalidateSettings drops the cached settings after an admin update
func InvalidateSettings(ctx context.Context) error {
	return RedisClient.Del(ctx, settingsCacheKey).Err()
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}

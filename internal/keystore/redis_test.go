package keystore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestRedis_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "parkhub:api_key")).
		Return(mock.Result(mock.RedisString("stored-key-0123456789")))

	s := NewRedisWithClient(c, "", 0)
	got, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "stored-key-0123456789" {
		t.Errorf("got %q", got)
	}
}

func TestRedis_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "parkhub:api_key")).
		Return(mock.Result(mock.RedisNil()))

	s := NewRedisWithClient(c, "", 0)
	_, err := s.Get(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRedis_Set_NoTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "parkhub:api_key", "new-key-0123456789")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewRedisWithClient(c, "", 0)
	if err := s.Set(context.Background(), "new-key-0123456789"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedis_Set_WithTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "parkhub:api_key" && cmd[3] == "EX"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewRedisWithClient(c, "", time.Hour)
	if err := s.Set(context.Background(), "new-key-0123456789"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedis_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "parkhub:api_key")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewRedisWithClient(c, "", 0)
	if err := s.Remove(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedis_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "custom:api_key")).
		Return(mock.Result(mock.RedisString("good-key-0123456789")))

	s := NewRedisWithClient(c, "custom:", 0)
	valid, err := s.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Error("want valid=true")
	}
}

func TestRedis_Validate_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "parkhub:api_key")).
		Return(mock.Result(mock.RedisNil()))

	s := NewRedisWithClient(c, "", 0)
	valid, err := s.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("want valid=false for missing key")
	}
}

func TestRedis_Get_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "parkhub:api_key")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewRedisWithClient(c, "", 0)
	if _, err := s.Get(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

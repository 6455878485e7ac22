package fallback

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type record struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "leave_requests_emp-1", Key("leave_requests", "emp-1"))
	assert.Equal(t, "all_leave_requests", AllKey("leave_requests"))
}

func TestStore_ListMissingKeyIsEmpty(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("leave_requests_emp-1").RedisNil()

	store := NewStore(rdb)
	var out []record
	err := store.List(context.Background(), "leave_requests_emp-1", &out)

	assert.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AppendRoundTrip(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	key := Key("leave_requests", "emp-1")
	first := record{ID: "a", Reason: "sick"}
	second := record{ID: "b", Reason: "trip"}

	firstJSON, _ := json.Marshal(first)
	listOne, _ := json.Marshal([]json.RawMessage{firstJSON})
	secondJSON, _ := json.Marshal(second)
	listTwo, _ := json.Marshal([]json.RawMessage{firstJSON, secondJSON})

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, listOne, 0).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(listOne))
	mock.ExpectSet(key, listTwo, 0).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(listTwo))

	store := NewStore(rdb)
	ctx := context.Background()

	assert.NoError(t, store.Append(ctx, key, first))
	assert.NoError(t, store.Append(ctx, key, second))

	var out []record
	assert.NoError(t, store.List(ctx, key, &out))
	assert.Equal(t, []record{first, second}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package listener

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/statistictest"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/usecase"
	"github.com/segmentio/kafka-go"
)

type queueReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(q.msgs) == 0 {
		q.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, nil
}

func message(t *testing.T, eventType string, payload interface{}) kafka.Message {
	t.Helper()
	ev, err := broker.NewEvent(eventType, payload, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	return kafka.Message{Value: data}
}

func TestOrderPaidInvalidatesDashboards(t *testing.T) {
	c := cache.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.SetJSON(ctx, "statistic:overview:2024-06-05", map[string]int{"revenue": 1}, 0)
	c.SetJSON(ctx, "products:list:abc", []int{1}, 0)

	uc := usecase.NewStatisticUseCase(statistictest.NewMemory(), c, clock.System(), logger.NewNop())
	reader := &queueReader{
		msgs: []kafka.Message{
			{Value: []byte("not json")},
			message(t, "warehouse.note_created", map[string]int{"note_id": 1}),
		},
		cancel: cancel,
	}
	l := NewStatisticListener(reader, uc, logger.NewNop())

	l.Start(ctx)
	if !c.Has("statistic:overview:2024-06-05") {
		t.Fatal("unrelated events must not invalidate")
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	reader.msgs = []kafka.Message{message(t, EventOrderPaid, map[string]interface{}{"order_id": 9, "business_date": "2024-06-05"})}
	reader.cancel = cancel2
	l.Start(ctx2)

	if c.Has("statistic:overview:2024-06-05") {
		t.Error("dashboard cache still present")
	}
	if !c.Has("products:list:abc") {
		t.Error("other caches must survive")
	}
}

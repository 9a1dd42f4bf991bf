package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"restaurantlisting/internal/restaurant"
)

// Ключи в etcd: всё под общим префиксом (по умолчанию /restaurants/v1), id дополняется нулями,
// чтобы выборка по префиксу шла в порядке id.
const etcdDefaultPrefix = "/restaurants/v1"

type etcdKeys string

func (k etcdKeys) seq() string     { return string(k) + "/seq" }
func (k etcdKeys) records() string { return string(k) + "/restaurant/" }

func (k etcdKeys) record(id int64) string {
	return fmt.Sprintf("%s%020d", k.records(), id)
}

// etcdNextSeq: для нулевого id выдаёт cur+1, для явного оставляет id.
// Счётчик не опускается ниже уже выданных значений.
func etcdNextSeq(cur, id int64) (assigned, seq int64) {
	if id == 0 {
		return cur + 1, cur + 1
	}
	return id, max(cur, id)
}

// etcdRecord — формат хранения в etcd, не совпадает с Dto намеренно.
type etcdRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Description string `json:"description"`
}

func toEtcdRecord(r restaurant.Restaurant) etcdRecord {
	return etcdRecord{ID: r.ID, Name: r.Name, Address: r.Address, City: r.City, Description: r.Description}
}

func (e etcdRecord) restaurant() restaurant.Restaurant {
	return restaurant.Restaurant{ID: e.ID, Name: e.Name, Address: e.Address, City: e.City, Description: e.Description}
}

// EtcdStore — restaurant.Store поверх etcd v3.
type EtcdStore struct {
	client *clientv3.Client
	keys   etcdKeys
}

// NewEtcdStore подключается к кластеру. Close обязателен.
func NewEtcdStore(endpoints []string) (*EtcdStore, error) {
	return NewEtcdStoreWithPrefix(endpoints, etcdDefaultPrefix)
}

// NewEtcdStoreWithPrefix — то же, но с собственным пространством ключей.
func NewEtcdStoreWithPrefix(endpoints []string, prefix string) (*EtcdStore, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("etcd dial: %w", err)
	}
	return &EtcdStore{client: client, keys: etcdKeys(prefix)}, nil
}

func (s *EtcdStore) Close() error { return s.client.Close() }

func (s *EtcdStore) ListAll(ctx context.Context) ([]restaurant.Restaurant, error) {
	resp, err := s.client.Get(ctx, s.keys.records(),
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend))
	if err != nil {
		return nil, fmt.Errorf("etcd list: %w", err)
	}
	out := make([]restaurant.Restaurant, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var rec etcdRecord
		if err := json.Unmarshal(kv.Value, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %q: %w", string(kv.Key), err)
		}
		out = append(out, rec.restaurant())
	}
	return out, nil
}

// Save выделяет id через CAS по счётчику: счётчик и запись пишутся одной транзакцией.
// Явный id поднимает счётчик, чтобы следующие автоматические id его не перезаписали.
func (s *EtcdStore) Save(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	seqKey := s.keys.seq()
	for {
		if err := ctx.Err(); err != nil {
			return restaurant.Restaurant{}, err
		}
		resp, err := s.client.Get(ctx, seqKey)
		if err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("etcd get seq: %w", err)
		}
		var cur, rev int64
		if len(resp.Kvs) > 0 {
			cur, err = strconv.ParseInt(string(resp.Kvs[0].Value), 10, 64)
			if err != nil {
				return restaurant.Restaurant{}, fmt.Errorf("bad seq value %q: %w", resp.Kvs[0].Value, err)
			}
			rev = resp.Kvs[0].ModRevision
		}

		rec := r
		var seq int64
		rec.ID, seq = etcdNextSeq(cur, r.ID)
		data, err := json.Marshal(toEtcdRecord(rec))
		if err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("marshal: %w", err)
		}
		txn, err := s.client.Txn(ctx).
			If(clientv3.Compare(clientv3.ModRevision(seqKey), "=", rev)).
			Then(
				clientv3.OpPut(seqKey, strconv.FormatInt(seq, 10)),
				clientv3.OpPut(s.keys.record(rec.ID), string(data)),
			).
			Commit()
		if err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("etcd txn: %w", err)
		}
		if txn.Succeeded {
			return rec, nil
		}
		// счётчик успел сдвинуться — повторяем
	}
}

func (s *EtcdStore) FindByID(ctx context.Context, id int64) (restaurant.Restaurant, bool, error) {
	resp, err := s.client.Get(ctx, s.keys.record(id))
	if err != nil {
		return restaurant.Restaurant{}, false, fmt.Errorf("etcd get %d: %w", id, err)
	}
	if len(resp.Kvs) == 0 {
		return restaurant.Restaurant{}, false, nil
	}
	var rec etcdRecord
	if err := json.Unmarshal(resp.Kvs[0].Value, &rec); err != nil {
		return restaurant.Restaurant{}, false, fmt.Errorf("unmarshal %d: %w", id, err)
	}
	return rec.restaurant(), true, nil
}

// Package sink fans menu change events out to operator-facing destinations:
// the console, per-topic files, or a Kafka topic.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type Destination interface {
	WriteMessage(topic string, msg []byte) error
}

type ConsoleDestination struct{}

func (c *ConsoleDestination) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

type FileDestination struct {
	files    map[string]*os.File
	basePath string
}

func NewFileDestination(basePath string) *FileDestination {
	return &FileDestination{
		files:    make(map[string]*os.File),
		basePath: basePath,
	}
}

func (f *FileDestination) WriteMessage(topic string, msg []byte) error {
	file, ok := f.files[topic]
	if !ok {
		filename := filepath.Join(f.basePath, topic+".jsonl")
		var err error
		file, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		f.files[topic] = file
	}

	if _, err := file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (f *FileDestination) Close() error {
	var firstErr error
	for _, file := range f.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type KafkaDestination struct {
	producer sarama.SyncProducer
}

func NewKafkaDestination(brokerList string) (*KafkaDestination, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true // Must be true for SyncProducer
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(strings.Split(brokerList, ","), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return &KafkaDestination{producer: producer}, nil
}

func (k *KafkaDestination) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("Kafka producer is closed")
	}
	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	return err
}

func (k *KafkaDestination) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}

// Package events publishes schema change notifications to the broker's
// internal event stream.
//
// Whenever the registry admits a new revision or appends a tombstone, it
// hands a Notifier one Event describing the change. Notifications are
// best-effort by contract: the registry logs a publish failure and never
// fails the caller's operation because of it, so consumers of the event
// stream must tolerate gaps and re-sync from the lineage itself.
//
// Two backends are provided behind the Notifier interface, selected via
// configuration in the same way the storage backends are:
//
//   - KafkaNotifier publishes to a Kafka topic, keyed by schema ID so all
//     events of one lineage land in one partition, in order.
//   - RabbitNotifier publishes to a topic exchange with routing keys
//     "schema.admitted" and "schema.deleted".
//
// # Usage
//
//	notifier, err := events.NewKafkaNotifier(events.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Topic:   "schema-updates",
//	})
//	if err != nil {
//	    return err
//	}
//	svc := registry.NewService(store, checks).WithNotifier(notifier)
package events

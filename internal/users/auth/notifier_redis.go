// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/userdesk/internal/platform/constants"
	redisstore "github.com/taibuivan/userdesk/internal/platform/redis"
)

// # Redis Mail Outbox

const outboxKindVerification = "verify_email"

// outboxJob is the envelope read by the mail worker.
type outboxJob struct {
	Kind string           `json:"kind"`
	Mail VerificationMail `json:"mail"`
}

// RedisOutboxNotifier implements [VerificationNotifier] by queueing mail jobs
// on a Redis list for an external mail worker.
type RedisOutboxNotifier struct {
	client redisstore.ListPusher
	key    string
}

// NewRedisOutboxNotifier creates a notifier that pushes onto [constants.RedisKeyMailOutbox].
// A *redis.Client satisfies [redisstore.ListPusher].
func NewRedisOutboxNotifier(client redisstore.ListPusher) *RedisOutboxNotifier {
	return &RedisOutboxNotifier{client: client, key: constants.RedisKeyMailOutbox}
}

/*
SendVerification appends the mail job to the outbox list.

Parameters:
  - context: context.Context
  - mail: VerificationMail

Returns:
  - error: Encoding or Redis failures
*/
func (notifier *RedisOutboxNotifier) SendVerification(context context.Context, mail VerificationMail) error {
	job := outboxJob{Kind: outboxKindVerification, Mail: mail}
	if err := redisstore.PushJSON(context, notifier.client, notifier.key, job); err != nil {
		return fmt.Errorf("auth_outbox_enqueue_failed: %w", err)
	}
	return nil
}

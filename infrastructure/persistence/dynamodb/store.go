// Package dynamodb implements the repository ports on a single
// DynamoDB table. All uniqueness constraints (handles, like edges,
// friend request edges, tokens) are enforced with conditional writes
// so concurrent requests cannot produce duplicates.
package dynamodb

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	skProfile  = "PROFILE"
	skPost     = "POST"
	skReply    = "REPLY"
	skSession  = "SESSION"
	skClaim    = "CLAIM"
	skMetadata = "METADATA"
)

func userPK(id string) string          { return fmt.Sprintf("USER#%s", id) }
func postPK(id string) string          { return fmt.Sprintf("POST#%s", id) }
func replyPK(id string) string         { return fmt.Sprintf("REPLY#%s", id) }
func contentPK(id string) string       { return fmt.Sprintf("CONTENT#%s", id) }
func handlePK(handle string) string    { return fmt.Sprintf("HANDLE#%s", handle) }
func tokenPK(token string) string      { return fmt.Sprintf("TOKEN#%s", token) }
func likerSK(userID string) string     { return fmt.Sprintf("LIKER#%s", userID) }
func requestSK(receiver string) string { return fmt.Sprintf("FRQ#%s", receiver) }

// Table describes the single-table layout shared by every repository.
type Table struct {
	Name string
	GSI1 string
	GSI2 string
}

// isConditionalCheckFailed reports whether a write was rejected by its
// condition expression, both for plain writes and for transactions.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var tx *types.TransactionCanceledException
	if errors.As(err, &tx) {
		for _, reason := range tx.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

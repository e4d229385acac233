package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Scoring weights for the natural-language account matcher. The algorithm is
// deterministic for a given account list and query; only that determinism is
// contractual, not any notion of matching "correctness".
const (
	scoreExactNickname   = 200
	scoreWordsInNickname = 150 // per query word
	scoreExactName       = 100
	scoreWordsInName     = 50 // per query word
	scoreNameWordOverlap = 15 // per overlapping word
	scoreTypeWord        = 40
	scoreTypeSubstring   = 30
	scorePrimaryBonus    = 25

	acceptThreshold   = 100 // top score needed to win outright
	acceptMargin      = 20  // lead over the runner-up
	relevanceFloor    = 10  // minimum score to appear as an ambiguous option
	maxAmbiguousShown = 3
)

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func subset(words, of map[string]bool) bool {
	if len(words) == 0 {
		return false
	}
	for w := range words {
		if !of[w] {
			return false
		}
	}
	return true
}

func scoreAccount(acc Account, query string, queryWords map[string]bool) int {
	name := strings.ToLower(acc.AccountType) // account type doubles as the display name
	nickname := strings.ToLower(acc.AccountNickname)
	nameWords := wordSet(name)

	score := 0

	if nickname != "" && nickname == query {
		score += scoreExactNickname
	} else if nickname != "" && subset(queryWords, wordSet(nickname)) {
		score += scoreWordsInNickname * len(queryWords)
	}

	if name == query {
		score += scoreExactName
	}
	if subset(queryWords, nameWords) {
		score += scoreWordsInName * len(queryWords)
	}

	overlap := 0
	for w := range queryWords {
		if nameWords[w] {
			overlap++
		}
	}
	score += scoreNameWordOverlap * overlap

	accType := strings.ToLower(acc.AccountType)
	if queryWords[accType] {
		score += scoreTypeWord
	} else if strings.Contains(query, accType) {
		score += scoreTypeSubstring
	}

	if queryWords["primary"] && (strings.Contains(name, "primary") || strings.Contains(nickname, "primary")) {
		score += scorePrimaryBonus
	}

	return score
}

// ResolveAccount scores a free-text description against the user's accounts
// and returns a single account, an ambiguous candidate list, or not-found.
func (e *Engine) ResolveAccount(ctx context.Context, userID, freeText string) ResolveResult {
	const op = "find_account_by_natural_language"
	params := map[string]any{"user_id": userID, "natural_language_string": freeText}

	listed := e.ListAccounts(ctx, userID)
	if listed.Status != StatusSuccess {
		if listed.Status == StatusNoAccountsFound {
			msg := fmt.Sprintf("No accounts exist for user %q to perform a match.", userID)
			e.recordAction(op, params, actionListAccounts, StatusAccountNotFound, "", msg)
			return ResolveResult{Status: StatusAccountNotFound, Message: msg}
		}
		e.recordAction(op, params, actionListAccounts, listed.Status, "", fmt.Sprintf("Could not retrieve accounts for matching: %s", listed.Message))
		return ResolveResult{Status: listed.Status, Message: listed.Message}
	}

	query := strings.ToLower(strings.TrimSpace(freeText))
	queryWords := wordSet(query)

	var candidates []ResolvedAccount
	for _, acc := range listed.Accounts {
		if s := scoreAccount(acc, query, queryWords); s > 0 {
			candidates = append(candidates, ResolvedAccount{
				AccountID:       acc.AccountID,
				AccountName:     acc.AccountType,
				AccountNickname: acc.AccountNickname,
				AccountType:     acc.AccountType,
				Score:           s,
			})
		}
	}

	if len(candidates) == 0 {
		msg := fmt.Sprintf("Could not find an account matching %q.", freeText)
		e.recordAction(op, params, actionListAccounts, StatusAccountNotFound, "", msg)
		return ResolveResult{Status: StatusAccountNotFound, Message: msg}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	best := candidates[0]

	unambiguous := len(candidates) == 1 ||
		(best.Score >= acceptThreshold && best.Score > candidates[1].Score+acceptMargin)
	if unambiguous {
		e.recordAction(op, params, actionListAccounts, StatusSuccess,
			fmt.Sprintf("Found account: %s (Name: %s, Type: %s, Score: %d)", best.AccountID, best.AccountName, best.AccountType, best.Score), "")
		return ResolveResult{
			Status:          StatusSuccess,
			AccountID:       best.AccountID,
			AccountName:     best.AccountName,
			AccountNickname: best.AccountNickname,
			AccountType:     best.AccountType,
			Message:         fmt.Sprintf("Successfully identified account %q.", best.AccountName),
		}
	}

	var options []ResolvedAccount
	for _, c := range candidates {
		if c.Score > relevanceFloor {
			options = append(options, c)
		}
		if len(options) == maxAmbiguousShown {
			break
		}
	}
	if len(options) == 0 {
		msg := fmt.Sprintf("Could not find a sufficiently clear match for account %q.", freeText)
		e.recordAction(op, params, actionListAccounts, StatusAccountNotFound, "", fmt.Sprintf("%s Top score: %d", msg, best.Score))
		return ResolveResult{Status: StatusAccountNotFound, Message: msg}
	}

	msg := fmt.Sprintf("Your description %q is ambiguous and matches multiple accounts. Please be more specific.", freeText)
	e.recordAction(op, params, actionListAccounts, StatusAmbiguousAccount, "", msg)
	return ResolveResult{Status: StatusAmbiguousAccount, Message: msg, Options: options}
}

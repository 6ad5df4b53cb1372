package services

import "sort"

// SortByLikesCount orders accounts by received likes, descending. Equal
// counts are ordered by ascending user ID. Accounts without a loaded count
// rank as zero.
func SortByLikesCount(accounts []*Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		ci, cj := likesCountOf(accounts[i]), likesCountOf(accounts[j])
		if ci != cj {
			return ci > cj
		}
		return accounts[i].User.ID < accounts[j].User.ID
	})
}

func likesCountOf(a *Account) int64 {
	if a.LikesCount == nil {
		return 0
	}
	return *a.LikesCount
}

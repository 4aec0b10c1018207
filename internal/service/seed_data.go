package service

func strPtr(s string) *string { return &s }

func sample(title, platform, link, difficulty, topics string) ProblemRequest {
	return ProblemRequest{
		Title:        title,
		Platform:     strPtr(platform),
		PlatformLink: strPtr(link),
		Difficulty:   difficulty,
		Topics:       topics,
	}
}

var sampleProblems = []ProblemRequest{
	sample("Two Sum", "LeetCode", "https://leetcode.com/problems/two-sum/", "Easy", "Array, Hash Table"),
	sample("Valid Parentheses", "LeetCode", "https://leetcode.com/problems/valid-parentheses/", "Easy", "Stack, String"),
	sample("Merge Two Sorted Lists", "LeetCode", "https://leetcode.com/problems/merge-two-sorted-lists/", "Easy", "Linked List, Recursion"),
	sample("Climbing Stairs", "HackerRank", "https://www.hackerrank.com/challenges/climbing-the-leaderboard/", "Easy", "Dynamic Programming"),
	sample("Maximum Subarray", "Codeforces", "https://codeforces.com/problemset/problem/1/A", "Easy", "Array, Greedy, Kadane"),
	sample("Best Time to Buy and Sell Stock", "LeetCode", "https://leetcode.com/problems/best-time-to-buy-and-sell-stock/", "Easy", "Array, Dynamic Programming"),
	sample("Reverse Linked List", "LeetCode", "https://leetcode.com/problems/reverse-linked-list/", "Easy", "Linked List, Recursion"),
	sample("Valid Anagram", "LeetCode", "https://leetcode.com/problems/valid-anagram/", "Easy", "Hash Table, String, Sorting"),
	sample("Binary Search", "LeetCode", "https://leetcode.com/problems/binary-search/", "Easy", "Array, Binary Search"),
	sample("Contains Duplicate", "LeetCode", "https://leetcode.com/problems/contains-duplicate/", "Easy", "Array, Hash Table, Sorting"),
	sample("Longest Substring Without Repeating Characters", "LeetCode", "https://leetcode.com/problems/longest-substring-without-repeating-characters/", "Medium", "Hash Table, Sliding Window"),
	sample("Merge Intervals", "LeetCode", "https://leetcode.com/problems/merge-intervals/", "Medium", "Array, Sorting"),
	sample("Coin Change", "LeetCode", "https://leetcode.com/problems/coin-change/", "Medium", "Dynamic Programming, BFS"),
	sample("3Sum", "LeetCode", "https://leetcode.com/problems/3sum/", "Medium", "Array, Two Pointers, Sorting"),
	sample("Group Anagrams", "LeetCode", "https://leetcode.com/problems/group-anagrams/", "Medium", "Array, Hash Table, String, Sorting"),
	sample("Product of Array Except Self", "LeetCode", "https://leetcode.com/problems/product-of-array-except-self/", "Medium", "Array, Prefix Sum"),
	sample("Course Schedule", "LeetCode", "https://leetcode.com/problems/course-schedule/", "Medium", "DFS, BFS, Graph, Topological Sort"),
	sample("Number of Islands", "LeetCode", "https://leetcode.com/problems/number-of-islands/", "Medium", "Array, DFS, BFS, Union Find, Matrix"),
	sample("Clone Graph", "HackerRank", "https://www.hackerrank.com/challenges/clone-graph/", "Medium", "Hash Table, DFS, BFS, Graph"),
	sample("Decode Ways", "Codeforces", "https://codeforces.com/problemset/problem/2/A", "Medium", "String, Dynamic Programming"),
	sample("Trapping Rain Water", "LeetCode", "https://leetcode.com/problems/trapping-rain-water/", "Hard", "Array, Two Pointers, Stack"),
	sample("Median of Two Sorted Arrays", "LeetCode", "https://leetcode.com/problems/median-of-two-sorted-arrays/", "Hard", "Array, Binary Search, Divide and Conquer"),
	sample("Merge k Sorted Lists", "LeetCode", "https://leetcode.com/problems/merge-k-sorted-lists/", "Hard", "Linked List, Divide and Conquer, Heap, Merge Sort"),
	sample("Word Ladder", "LeetCode", "https://leetcode.com/problems/word-ladder/", "Hard", "Hash Table, String, BFS"),
}

// empty entries leave the attempt without notes
var sampleNotes = []string{
	"Struggled with edge cases initially",
	"Used HashMap approach, worked well",
	"Need to review this concept again",
	"Solved after looking at hints",
	"Clean solution, happy with it!",
	"Took longer than expected",
	"Optimized from O(n²) to O(n)",
	"",
	"",
	"",
}

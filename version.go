package main

import "fmt"

var (
	gitSHA1   string = "unknown"
	gitDirty  string = "unknown"
	buildID   string = "unknown"
	buildDate string = "unknown"
)

func DisplayGitSHA1() string {
	return gitSHA1
}

func DisplayGitDirty() string {
	return gitDirty
}

func DisplayBuildIdRaw() string {
	return buildID + buildDate + gitSHA1 + gitDirty
}

func Version() string {
	return fmt.Sprintf("numeric-display git:%s dirty:%s build:%s (%s)", gitSHA1, gitDirty, buildID, buildDate)
}

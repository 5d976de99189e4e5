package main

import "github.com/killallgit/labeler-api/cmd"

// @title           RTTM Labeler API
// @version         1.0.0
// @description     A diarization labeling engine with RTTM dataset export
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/labeler-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}

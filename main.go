package main

import "school_achievements/cmd"

// @Title						Учет достижений школьников
// @Version					1.0
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cmd.Execute()
}

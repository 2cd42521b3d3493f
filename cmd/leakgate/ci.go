package leakgate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = ".github/workflows/leakgate.yml"
				content = `name: leakgate
on:
  pull_request:

jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/leakgate/leakgate@latest
      - run: leakgate pr --repo "$GITHUB_REPOSITORY" --pr "${{ github.event.pull_request.number }}" --comment --fail-on medium
        env:
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [scan]
scan:
  stage: scan
  image: golang:1.25
  script:
    - go version
    - go build -o bin/leakgate .
    - git fetch origin "$CI_DEFAULT_BRANCH"
    - git diff "origin/$CI_DEFAULT_BRANCH...HEAD" | ./bin/leakgate scan --json --fail-on medium | tee leakgate-findings.json
  artifacts:
    when: always
    paths:
      - leakgate-findings.json
`
			case "bitbucket":
				path = "bitbucket-pipelines.yml"
				content = `pipelines:
  pull-requests:
    '**':
      - step:
          name: Leakgate Scan
          image: golang:1.25
          caches:
            - go
          script:
            - go version
            - go build -o bin/leakgate .
            - git fetch origin "$BITBUCKET_PR_DESTINATION_BRANCH"
            - git diff "origin/$BITBUCKET_PR_DESTINATION_BRANCH...HEAD" | ./bin/leakgate scan --json --fail-on medium | tee leakgate-findings.json
          artifacts:
            - leakgate-findings.json
`
			case "azure":
				path = "azure-pipelines.yml"
				content = `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go version
    go build -o bin/leakgate .
    git fetch origin main
    git diff origin/main...HEAD | ./bin/leakgate scan --json --fail-on medium | tee leakgate-findings.json
  displayName: 'Leakgate Scan'
- publish: leakgate-findings.json
  artifact: leakgate-findings
  condition: succeededOrFailed()
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, bitbucket, azure")
			}
			// ensure parent directories exist if needed
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket | azure")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		// fallback: print a hint if cobra API changes
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}

//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/propilot/fbohub --repository.default-branch master --repository.path /

package fbohub

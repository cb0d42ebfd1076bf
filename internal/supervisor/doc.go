// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

/*
Package supervisor runs the long-lived parts of the service under a suture
v4 supervisor tree.

	blogminds
	├── jobs-layer
	│   ├── training-worker     (jobs.Queue.Serve)
	│   └── training-scheduler  (startup and periodic retraining)
	└── api-layer
	    └── http-server

Crashed services are restarted with suture's backoff. The layers are
independent supervisors, so a failing training worker never stops the HTTP
server. Supervisor events go to zerolog through sutureslog and
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddJobsService(services.NewTrainingWorkerService(queue))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
